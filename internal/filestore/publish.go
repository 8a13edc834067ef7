package filestore

import (
	"bytes"
	"context"
	"path"
	"time"

	"github.com/koustreak/bootprofile/internal/errs"
)

// ObjectKey names the object a rendered profile is stored under:
// <project>/<tag>/<task>.<ext>. An empty task stands for the plain
// resolved configuration and is stored as "profile".
func ObjectKey(project, tag, task, ext string) string {
	if task == "" {
		task = "profile"
	}
	return path.Join(project, tag, task+"."+ext)
}

// PublishRequest describes one artifact upload.
type PublishRequest struct {
	Bucket      string
	Key         string
	Body        []byte
	ContentType string
	TTL         time.Duration // 0 skips presigning
}

// PublishResult reports where an artifact ended up.
type PublishResult struct {
	Bucket string
	Info   *ObjectInfo
	URL    string
}

// Publish ensures the bucket exists, uploads the body and returns the stored
// object's metadata with an optional presigned download URL.
func Publish(ctx context.Context, store Store, req PublishRequest) (*PublishResult, error) {
	if req.Bucket == "" || req.Key == "" {
		return nil, errs.New(errs.ErrKindInvalidInput, "publish needs a bucket and a key")
	}

	if err := store.EnsureBucket(ctx, req.Bucket); err != nil {
		return nil, err
	}

	if err := store.PutObject(ctx, req.Bucket, req.Key, bytes.NewReader(req.Body), int64(len(req.Body)), req.ContentType); err != nil {
		return nil, err
	}

	info, err := store.StatObject(ctx, req.Bucket, req.Key)
	if err != nil {
		return nil, err
	}

	res := &PublishResult{Bucket: req.Bucket, Info: info}
	if req.TTL > 0 {
		url, err := store.PresignGetURL(ctx, req.Bucket, req.Key, req.TTL)
		if err != nil {
			return nil, err
		}
		res.URL = url
	}
	return res, nil
}
