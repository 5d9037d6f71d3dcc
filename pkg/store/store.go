// Package store exports generated templates and per-file conversion status
// to Redis. Entries are hashes keyed "TABLE|key".
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/newtron-network/mistconv/pkg/model"
	"github.com/newtron-network/mistconv/pkg/pipeline"
)

// Table names
const (
	TemplateTable = "MIST_TEMPLATE"
	StatusTable   = "CONVERSION_STATUS"
)

// DefaultDB is the Redis database used when none is configured.
const DefaultDB = 0

// Client wraps a Redis client for template export.
type Client struct {
	client *redis.Client
}

// NewClient creates a client for the Redis server at addr.
func NewClient(addr string, db int) *Client {
	return &Client{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		}),
	}
}

// Connect tests the connection
func (c *Client) Connect(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the connection
func (c *Client) Close() error {
	return c.client.Close()
}

func redisKey(table, key string) string {
	return fmt.Sprintf("%s|%s", table, key)
}

// SaveTemplate stores the template JSON under MIST_TEMPLATE|<name>.
func (c *Client) SaveTemplate(ctx context.Context, t *model.MistTemplate) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encoding template: %w", err)
	}
	return c.client.HSet(ctx, redisKey(TemplateTable, t.Name),
		"json", string(data),
		"networks", len(t.Networks),
		"port_usages", len(t.PortUsages),
		"rules", len(t.SwitchMatching.Rules),
		"updated", time.Now().UTC().Format(time.RFC3339),
	).Err()
}

// LoadTemplate reads a template previously stored with SaveTemplate.
func (c *Client) LoadTemplate(ctx context.Context, name string) (*model.MistTemplate, error) {
	data, err := c.client.HGet(ctx, redisKey(TemplateTable, name), "json").Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("template %q not found", name)
	}
	if err != nil {
		return nil, err
	}
	var t model.MistTemplate
	if err := json.Unmarshal([]byte(data), &t); err != nil {
		return nil, fmt.Errorf("decoding template %q: %w", name, err)
	}
	return &t, nil
}

// Templates lists the names of stored templates.
func (c *Client) Templates(ctx context.Context) ([]string, error) {
	keys, err := c.client.Keys(ctx, redisKey(TemplateTable, "*")).Result()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, strings.TrimPrefix(k, TemplateTable+"|"))
	}
	return names, nil
}

// FileStatus is the stored conversion status of one file.
type FileStatus struct {
	File          string
	Template      string
	Format        string
	SuccessVlan   bool
	SuccessConfig bool
	ErrorMessage  string
}

// SaveStatus writes one CONVERSION_STATUS entry per file. The writes are
// pipelined.
func (c *Client) SaveStatus(ctx context.Context, template string, files []*pipeline.ConfigFile) error {
	pipe := c.client.Pipeline()
	for _, f := range files {
		key := redisKey(StatusTable, f.Name)
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			"template", template,
			"format", f.Format.String(),
			"success_vlan", strconv.FormatBool(f.SuccessVlan),
			"success_config", strconv.FormatBool(f.SuccessConfig),
			"error_message", f.ErrorMessage,
		)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Status reads the stored status of a file.
func (c *Client) Status(ctx context.Context, file string) (*FileStatus, error) {
	vals, err := c.client.HGetAll(ctx, redisKey(StatusTable, file)).Result()
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("no status for %q", file)
	}
	return statusFromHash(file, vals), nil
}

func statusFromHash(file string, vals map[string]string) *FileStatus {
	vlan, _ := strconv.ParseBool(vals["success_vlan"])
	config, _ := strconv.ParseBool(vals["success_config"])
	return &FileStatus{
		File:          file,
		Template:      vals["template"],
		Format:        vals["format"],
		SuccessVlan:   vlan,
		SuccessConfig: config,
		ErrorMessage:  vals["error_message"],
	}
}

// Export saves a conversion result: the template and the status of every
// file.
func (c *Client) Export(ctx context.Context, res *pipeline.Result) error {
	if res.Template == nil {
		return fmt.Errorf("no template to export")
	}
	if err := c.SaveTemplate(ctx, res.Template); err != nil {
		return fmt.Errorf("saving template: %w", err)
	}
	if err := c.SaveStatus(ctx, res.Template.Name, res.Files); err != nil {
		return fmt.Errorf("saving file status: %w", err)
	}
	return nil
}
