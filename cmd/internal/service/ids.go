package service

import (
	"strconv"

	"bizdirectory/cmd/internal/domain/entity"
)

func claimResourceID(c *entity.OwnershipClaim) string {
	return strconv.FormatInt(c.ID, 10)
}

func reviewResourceID(r *entity.Review) string {
	return strconv.FormatInt(r.ID, 10)
}

func featuredResourceID(f *entity.FeaturedRequest) string {
	return strconv.FormatInt(f.ID, 10)
}
