package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	sheetsapi "google.golang.org/api/sheets/v4"
	"google.golang.org/api/option"
)

type Config struct {
	SpreadsheetID string
	Range         string // e.g. "A1:AA"
	ClientEmail   string
	PrivateKey    string
	Endpoint      string        // override for local dev / tests; disables auth
	FetchTimeout  time.Duration // per-fetch deadline; 0 disables
}

// Client reads value grids from one spreadsheet. It authenticates with
// a service-account JWT unless an endpoint override is configured.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	readRange     string
	fetchTimeout  time.Duration
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("sheets: spreadsheet id is required")
	}
	readRange := cfg.Range
	if readRange == "" {
		readRange = "A1:AA"
	}

	var opts []option.ClientOption
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint), option.WithoutAuthentication())
	} else {
		if cfg.ClientEmail == "" || cfg.PrivateKey == "" {
			return nil, errors.New("sheets: client email and private key are required")
		}
		jwtCfg := &jwt.Config{
			Email: cfg.ClientEmail,
			// env values carry the key with literal \n escapes
			PrivateKey: []byte(strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")),
			Scopes:     []string{sheetsapi.SpreadsheetsReadonlyScope},
			TokenURL:   google.JWTTokenURL,
		}
		opts = append(opts, option.WithTokenSource(jwtCfg.TokenSource(ctx)))
	}

	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "sheets: create service")
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		readRange:     readRange,
		fetchTimeout:  cfg.FetchTimeout,
	}, nil
}

// FetchRows pulls the configured cell range from one named sheet. The
// first returned row is the header; callers discard it.
func (c *Client) FetchRows(ctx context.Context, source string) ([][]string, error) {
	if c.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.fetchTimeout)
		defer cancel()
	}
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, source+"!"+c.readRange).
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.Wrapf(err, "sheets: fetch %q", source)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		cells := make([]string, len(raw))
		for i, v := range raw {
			cells[i] = cellString(v)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}
