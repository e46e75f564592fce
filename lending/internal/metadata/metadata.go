// Package metadata looks up cover and author data for a book by ISBN on Open Library.
package metadata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/book-circle/lending/internal/errs"
	"github.com/Astemirdum/book-circle/lending/internal/model"
	"github.com/Astemirdum/book-circle/pkg/circuit_breaker"
)

var json = jsoniter.ConfigFastest

type Config struct {
	BaseURL string        `envconfig:"METADATA_BASE_URL" default:"https://openlibrary.org"`
	Timeout time.Duration `envconfig:"METADATA_TIMEOUT" default:"3s"`
}

type Client struct {
	baseURL string
	client  *http.Client
	cb      circuit_breaker.CircuitBreaker
	log     *zap.Logger
}

func New(cfg Config, cb circuit_breaker.CircuitBreaker, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		cb:      cb,
		log:     log.Named("metadata"),
	}
}

type author struct {
	Name string `json:"name"`
}

type cover struct {
	Small  string `json:"small"`
	Medium string `json:"medium"`
	Large  string `json:"large"`
}

type entry struct {
	Title   string   `json:"title"`
	Authors []author `json:"authors"`
	Cover   cover    `json:"cover"`
}

// Lookup returns errs.ErrNotFound for an ISBN the catalogue does not know and
// circuit_breaker.ErrOpenCB while the upstream is considered down.
func (c *Client) Lookup(ctx context.Context, isbn string) (model.BookMetadata, error) {
	isbn = normalizeISBN(isbn)
	if isbn == "" {
		return model.BookMetadata{}, errors.Wrap(errs.ErrNotFound, "empty isbn")
	}
	key := "ISBN:" + isbn

	var (
		found bool
		e     entry
	)
	err := c.cb.Call(func() error {
		q := url.Values{}
		q.Set("bibkeys", key)
		q.Set("format", "json")
		q.Set("jscmd", "data")
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/books?%s", c.baseURL, q.Encode()), http.NoBody)
		if err != nil {
			return err
		}
		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("metadata upstream: %s", resp.Status)
		}
		if resp.StatusCode != http.StatusOK {
			return nil
		}
		entries := make(map[string]entry)
		if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
			return errors.Wrap(err, "decode metadata")
		}
		e, found = entries[key]
		return nil
	})
	if err != nil {
		c.log.Warn("lookup", zap.String("isbn", isbn), zap.Error(err))
		return model.BookMetadata{}, err
	}
	if !found {
		return model.BookMetadata{}, errors.Wrapf(errs.ErrNotFound, "isbn %s", isbn)
	}

	md := model.BookMetadata{Title: e.Title}
	names := make([]string, 0, len(e.Authors))
	for _, a := range e.Authors {
		names = append(names, a.Name)
	}
	md.Author = strings.Join(names, ", ")
	switch {
	case e.Cover.Medium != "":
		md.CoverURL = e.Cover.Medium
	case e.Cover.Large != "":
		md.CoverURL = e.Cover.Large
	default:
		md.CoverURL = e.Cover.Small
	}
	return md, nil
}

func normalizeISBN(isbn string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == 'X', r == 'x':
			return r
		}
		return -1
	}, isbn)
}
