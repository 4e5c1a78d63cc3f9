package cache

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/rohmanhakim/ikea-catalog/pkg/failure"
	"github.com/rohmanhakim/ikea-catalog/pkg/fileutil"
)

/*
Responsibilities
- Map (item number, asset) to a stable filesystem location
- Answer presence checks
- Perform the persisted write

Cache Characteristics
- One subdirectory per compact item number
- File presence is the only validity signal
- No eviction, no size bound, no TTL
- Writes are atomic (temp-then-rename), so a concurrent miss for the
  same item can never observe a partially written file
*/
type Cache struct {
	root string
}

// New creates a cache rooted at the given directory. The directory is
// created lazily on the first write.
func New(root string) Cache {
	return Cache{
		root: root,
	}
}

func (c *Cache) Root() string {
	return c.root
}

// Path returns the filesystem location for an item's asset. It does not
// check for existence.
func (c *Cache) Path(itemNo string, asset Asset) string {
	return filepath.Join(c.root, itemNo, string(asset))
}

// Has reports whether the asset has been cached for the item.
func (c *Cache) Has(itemNo string, asset Asset) bool {
	_, err := os.Stat(c.Path(itemNo, asset))
	return err == nil
}

// Read returns the cached content of an item's asset.
func (c *Cache) Read(itemNo string, asset Asset) ([]byte, failure.ClassifiedError) {
	path := c.Path(itemNo, asset)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CacheError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseReadFailure,
			Path:      path,
		}
	}
	return data, nil
}

// Write persists an item's asset, creating the item directory on demand,
// and returns the path of the written file.
func (c *Cache) Write(itemNo string, asset Asset, data []byte) (string, failure.ClassifiedError) {
	if err := fileutil.EnsureDir(c.root, itemNo); err != nil {
		var fileErr *fileutil.FileError
		if errors.As(err, &fileErr) {
			return "", &CacheError{
				Message:   fileErr.Message,
				Retryable: fileErr.Retryable,
				Cause:     ErrCausePathError,
				Path:      fileErr.Path,
			}
		}
		return "", &CacheError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCausePathError,
			Path:      c.root,
		}
	}

	path := c.Path(itemNo, asset)
	if err := fileutil.WriteAtomic(path, data, 0644); err != nil {
		var fileErr *fileutil.FileError
		if errors.As(err, &fileErr) {
			return "", &CacheError{
				Message:   fileErr.Message,
				Retryable: fileErr.Retryable,
				Cause:     ErrCauseWriteFail,
				Path:      path,
			}
		}
		return "", &CacheError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseWriteFail,
			Path:      path,
		}
	}
	return path, nil
}
