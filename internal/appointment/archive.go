package appointment

import (
	"context"
	"errors"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

const archivePrefix = "schedules/"

var ErrArchiveDisabled = errors.New("schedule archive is not configured")

type dayExporter interface {
	ExportDay(date, format string) (contentType, filename string, out []byte, err error)
}

// ArchiveService copies day sheets into a GCS bucket.
type ArchiveService struct {
	Bucket   string
	Exporter dayExporter
}

func NewArchiveService(bucket string, exporter dayExporter) *ArchiveService {
	return &ArchiveService{Bucket: strings.TrimSpace(bucket), Exporter: exporter}
}

func (as *ArchiveService) Enabled() bool {
	return as != nil && as.Bucket != ""
}

// ArchiveDay uploads the workbook for date and returns its gs:// URL.
// Re-archiving a date overwrites the previous object.
func (as *ArchiveService) ArchiveDay(ctx context.Context, date string) (string, error) {
	if !as.Enabled() {
		return "", ErrArchiveDisabled
	}

	contentType, filename, data, err := as.Exporter.ExportDay(date, "excel")
	if err != nil {
		return "", err
	}

	client, err := newGCSClientHook(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	objectName := archivePrefix + strings.TrimPrefix(filename, "appointments-")
	w := client.Bucket(as.Bucket).Object(objectName).NewWriter(ctx, contentType)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	return "gs://" + as.Bucket + "/" + objectName, nil
}

func (as *ArchiveService) ListArchives(ctx context.Context) ([]string, error) {
	if !as.Enabled() {
		return nil, ErrArchiveDisabled
	}

	client, err := newGCSClientHook(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	return client.Bucket(as.Bucket).ListNames(ctx, archivePrefix)
}

type gcsClient interface {
	Bucket(name string) gcsBucket
	Close() error
}
type gcsBucket interface {
	Object(name string) gcsObject
	ListNames(ctx context.Context, prefix string) ([]string, error)
}
type gcsObject interface {
	NewWriter(ctx context.Context, contentType string) io.WriteCloser
}

type realGCSClient struct{ c *storage.Client }
type realGCSBucket struct{ b *storage.BucketHandle }
type realGCSObject struct{ o *storage.ObjectHandle }

func (r realGCSClient) Bucket(name string) gcsBucket { return realGCSBucket{b: r.c.Bucket(name)} }
func (r realGCSClient) Close() error                 { return r.c.Close() }
func (b realGCSBucket) Object(name string) gcsObject { return realGCSObject{o: b.b.Object(name)} }

func (b realGCSBucket) ListNames(ctx context.Context, prefix string) ([]string, error) {
	names := []string{}
	it := b.b.Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		names = append(names, attrs.Name)
	}
	return names, nil
}

func (o realGCSObject) NewWriter(ctx context.Context, contentType string) io.WriteCloser {
	w := o.o.NewWriter(ctx)
	w.ContentType = contentType
	return w
}

var newGCSClientHook = func(ctx context.Context) (gcsClient, error) {
	c, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return realGCSClient{c: c}, nil
}
