// Package waybill archives waybills as JSON documents, one per item.
package waybill

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"courier/internal/core/ports"
	"courier/internal/pkg/errs"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioArchive keeps waybills under "waybills/<item id>.json".
type MinioArchive struct {
	client *minio.Client
	bucket string
}

func NewMinioArchive(cfg MinioConfig) (*MinioArchive, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errors.New("minio endpoint is required")
	}
	if strings.TrimSpace(cfg.AccessKey) == "" || strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, errors.New("minio access key and secret key are required")
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("minio bucket is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	return &MinioArchive{client: client, bucket: cfg.Bucket}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (a *MinioArchive) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{})
}

func (a *MinioArchive) Store(ctx context.Context, waybill ports.Waybill) error {
	body, err := json.Marshal(waybill)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("waybill", err)
	}

	_, err = a.client.PutObject(ctx, a.bucket, objectKey(waybill.ItemID),
		bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return errs.NewStorageError("put waybill", err)
	}
	return nil
}

func (a *MinioArchive) Load(ctx context.Context, itemID int64) (ports.Waybill, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, objectKey(itemID), minio.GetObjectOptions{})
	if err != nil {
		return ports.Waybill{}, errs.NewStorageError("get waybill", err)
	}
	defer obj.Close()

	// GetObject is lazy; a missing key only surfaces on Stat or the first read.
	if _, err = obj.Stat(); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return ports.Waybill{}, errs.NewObjectNotFoundError("waybill", itemID)
		}
		return ports.Waybill{}, errs.NewStorageError("stat waybill", err)
	}

	var waybill ports.Waybill
	if err = json.NewDecoder(obj).Decode(&waybill); err != nil {
		return ports.Waybill{}, errs.NewStorageError("decode waybill", err)
	}
	return waybill, nil
}

func (a *MinioArchive) Remove(ctx context.Context, itemID int64) error {
	if err := a.client.RemoveObject(ctx, a.bucket, objectKey(itemID), minio.RemoveObjectOptions{}); err != nil {
		return errs.NewStorageError("remove waybill", err)
	}
	return nil
}

func objectKey(itemID int64) string {
	return fmt.Sprintf("waybills/%d.json", itemID)
}
