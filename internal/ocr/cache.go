package ocr

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const textBucket = "ocr_text"

// Cache persists OCR output per image so re-running the tool over a
// directory of screenshots does not re-OCR images it has already seen.
type Cache struct {
	db *bbolt.DB
}

// OpenCache opens (or creates) a bbolt-backed OCR cache.
func OpenCache(path string) (*Cache, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(textBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache bucket: %w", err)
	}

	return &Cache{db: db}, nil
}

// cacheKey derives the cache key from the engine name and the image bytes,
// so switching engines or editing a screenshot both miss the cache.
func cacheKey(engine string, image []byte) []byte {
	sum := sha256.Sum256(image)
	return []byte(engine + ":" + hex.EncodeToString(sum[:]))
}

// Get returns the cached text for a key and whether it was present.
func (c *Cache) Get(key []byte) (string, bool) {
	var text string
	found := false
	c.db.View(func(tx *bbolt.Tx) error {
		if data := tx.Bucket([]byte(textBucket)).Get(key); data != nil {
			text = string(data)
			found = true
		}
		return nil
	})
	return text, found
}

// Put stores the text for a key.
func (c *Cache) Put(key []byte, text string) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(textBucket)).Put(key, []byte(text))
	})
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// cached wraps an Engine with read-through caching.
type cached struct {
	engine Engine
	cache  *Cache
}

// WithCache returns an Engine that consults the cache before running the
// underlying engine and stores fresh results after. The caller keeps
// ownership of the cache; Close only closes the wrapped engine.
func WithCache(engine Engine, cache *Cache) Engine {
	return &cached{engine: engine, cache: cache}
}

func (c *cached) ExtractText(ctx context.Context, image []byte) (string, error) {
	key := cacheKey(c.engine.Name(), image)
	if text, ok := c.cache.Get(key); ok {
		return text, nil
	}
	text, err := c.engine.ExtractText(ctx, image)
	if err != nil {
		return "", err
	}
	if err := c.cache.Put(key, text); err != nil {
		return "", fmt.Errorf("caching ocr text: %w", err)
	}
	return text, nil
}

func (c *cached) Name() string { return c.engine.Name() }

func (c *cached) Close() error { return c.engine.Close() }
