package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, f.err
}

func TestSESMailer_Send(t *testing.T) {
	fake := &fakeSES{}
	m := &SESMailer{client: fake, sender: "no-reply@directory.test"}

	err := m.Send(context.Background(), &Message{To: "owner@example.com", Subject: "Claim approved", Text: "Welcome"})
	require.NoError(t, err)

	require.NotNil(t, fake.input)
	assert.Equal(t, "no-reply@directory.test", aws.ToString(fake.input.Source))
	assert.Equal(t, []string{"owner@example.com"}, fake.input.Destination.ToAddresses)
	assert.Equal(t, "Claim approved", aws.ToString(fake.input.Message.Subject.Data))
	assert.Equal(t, "Welcome", aws.ToString(fake.input.Message.Body.Text.Data))
}

func TestSESMailer_Errors(t *testing.T) {
	m := &SESMailer{client: &fakeSES{err: errors.New("throttled")}, sender: "a@b.c"}

	assert.Error(t, m.Send(context.Background(), &Message{To: ""}))
	assert.EqualError(t, m.Send(context.Background(), &Message{To: "x@y.z"}), "throttled")
}
