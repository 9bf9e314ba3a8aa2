package waybill_test

import (
	"context"
	"testing"

	"courier/internal/adapters/out/waybill"
	"courier/internal/core/ports"
	"courier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(id int64) ports.Waybill {
	return ports.Waybill{
		ItemID:      id,
		Category:    "Book",
		Cost:        4,
		Sender:      "alice",
		Recipient:   "bob",
		Description: "two novels",
		SendingDate: "2024-06-01",
		DueDate:     "2024-06-02",
	}
}

func exerciseArchive(t *testing.T, archive ports.WaybillArchive) {
	ctx := context.Background()

	_, err := archive.Load(ctx, 404)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	require.NoError(t, archive.Store(ctx, sample(1)))
	got, err := archive.Load(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, sample(1), got)

	require.NoError(t, archive.Remove(ctx, 1))
	_, err = archive.Load(ctx, 1)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestMemoryArchive(t *testing.T) {
	exerciseArchive(t, waybill.NewMemoryArchive())
}

func TestNewMinioArchive_Config(t *testing.T) {
	tests := []struct {
		name string
		cfg  waybill.MinioConfig
		want string
	}{
		{"no endpoint", waybill.MinioConfig{}, "minio endpoint is required"},
		{"no keys", waybill.MinioConfig{Endpoint: "localhost:9000"}, "minio access key and secret key are required"},
		{"no bucket", waybill.MinioConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"}, "minio bucket is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := waybill.NewMinioArchive(tt.cfg)
			require.EqualError(t, err, tt.want)
		})
	}
}
