package archive

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	if in.Body != nil {
		f.body, _ = io.ReadAll(in.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func newTestArchive(p *fakePutter, prefix string) *S3Archive {
	a := NewS3Archive(p, "donations-audit", prefix, slog.New(slog.NewTextHandler(io.Discard, nil)))
	a.now = func() time.Time { return time.Unix(0, 1700000000000000000) }
	return a
}

func TestS3Archive_Archive(t *testing.T) {
	tests := []struct {
		name        string
		prefix      string
		orderID     string
		contentType string
		wantKey     string
		wantType    string
	}{
		{"json body", "callbacks/", "ORD1", "application/json", "callbacks/ORD1/1700000000000000000.json", "application/json"},
		{"form body", "callbacks", "ORD2", "application/x-www-form-urlencoded", "callbacks/ORD2/1700000000000000000.txt", "application/x-www-form-urlencoded"},
		{"no prefix", "", "ORD3", "", "ORD3/1700000000000000000.txt", "application/octet-stream"},
		{"unknown order", "cb", "", "text/plain", "cb/unknown/1700000000000000000.txt", "text/plain"},
		{"path in order id", "cb", "../etc/ORD", "text/plain", "cb/__etc_ORD/1700000000000000000.txt", "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePutter{}
			a := newTestArchive(p, tt.prefix)

			err := a.Archive(context.Background(), tt.orderID, tt.contentType, []byte("payload"))

			require.NoError(t, err)
			assert.Equal(t, "donations-audit", *p.input.Bucket)
			assert.Equal(t, tt.wantKey, *p.input.Key)
			assert.Equal(t, tt.wantType, *p.input.ContentType)
			assert.Equal(t, "payload", string(p.body))
		})
	}
}

func TestS3Archive_PutError(t *testing.T) {
	p := &fakePutter{err: errors.New("access denied")}
	a := newTestArchive(p, "cb")

	err := a.Archive(context.Background(), "ORD1", "application/json", []byte("{}"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Archive(context.Background(), "ORD1", "text/plain", nil))
}
