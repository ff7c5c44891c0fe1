package smarthire

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const (
	domainsPath        = "/domains"
	jobRolesPath       = "/job-roles"
	dashboardRolesPath = "/roles/"
	modelInfoPath      = "/model-info"
	rootPath           = "/"
)

// Domains is the list of domains known to the backend. Raw keeps the full payload
// because its shape differs between backends.
type Domains struct {
	Names []string       `json:"names" yaml:"names"`
	Count int            `json:"count" yaml:"count"`
	Raw   map[string]any `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// JobRoles is the list of roles, optionally scoped to one domain.
type JobRoles struct {
	Domain string         `json:"domain,omitempty" yaml:"domain,omitempty"`
	Roles  []string       `json:"roles" yaml:"roles"`
	Count  int            `json:"count" yaml:"count"`
	Raw    map[string]any `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// ModelInfo is opaque model metadata with the commonly present fields pulled out.
type ModelInfo struct {
	Status      string         `json:"status,omitempty" yaml:"status,omitempty" mapstructure:"status"`
	Version     string         `json:"version,omitempty" yaml:"version,omitempty" mapstructure:"version"`
	ModelLoaded bool           `json:"model_loaded" yaml:"model_loaded" mapstructure:"model_loaded"`
	Raw         map[string]any `json:"raw,omitempty" yaml:"raw,omitempty" mapstructure:"-"`
}

func (c *Client) Domains(ctx context.Context) (*Domains, error) {
	var raw map[string]any
	if err := c.getJSON(ctx, domainsPath, nil, &raw); err != nil {
		return nil, err
	}

	names, err := decodeNames(raw["domains"])
	if err != nil {
		return nil, fmt.Errorf("decode domains: %w", err)
	}

	count := len(names)
	if raw["count"] != nil {
		if err := weakDecode(raw["count"], &count); err != nil {
			return nil, fmt.Errorf("decode domains count: %w", err)
		}
	}

	return &Domains{Names: names, Count: count, Raw: raw}, nil
}

// JobRoles lists roles. The dashboard backend only lists roles of a given domain.
func (c *Client) JobRoles(ctx context.Context, domain string) (*JobRoles, error) {
	domain = strings.TrimSpace(domain)

	var raw map[string]any
	switch c.profile {
	case ProfileDashboard:
		if domain == "" {
			return nil, validationErrorf("domain is required by the %s profile", ProfileDashboard)
		}
		if err := c.getJSON(ctx, dashboardRolesPath+url.PathEscape(domain), nil, &raw); err != nil {
			return nil, err
		}
	default:
		var q url.Values
		if domain != "" {
			q = url.Values{"domain": []string{domain}}
		}
		if err := c.getJSON(ctx, jobRolesPath, q, &raw); err != nil {
			return nil, err
		}
	}

	key := "roles"
	if _, ok := raw[key]; !ok {
		key = "job_roles"
	}

	roles, err := decodeNames(raw[key])
	if err != nil {
		return nil, fmt.Errorf("decode job roles: %w", err)
	}

	result := &JobRoles{Domain: domain, Roles: roles, Count: len(roles), Raw: raw}
	if d, ok := raw["domain"].(string); ok && d != "" {
		result.Domain = d
	}

	return result, nil
}

// ModelInfo returns backend model metadata. The dashboard backend exposes it on its
// root endpoint.
func (c *Client) ModelInfo(ctx context.Context) (*ModelInfo, error) {
	path := modelInfoPath
	if c.profile == ProfileDashboard {
		path = rootPath
	}

	var raw map[string]any
	if err := c.getJSON(ctx, path, nil, &raw); err != nil {
		return nil, err
	}

	info := &ModelInfo{}
	if err := weakDecode(raw, info); err != nil {
		return nil, fmt.Errorf("decode model info: %w", err)
	}
	info.Raw = raw

	return info, nil
}

// decodeNames accepts a list of names, a list of objects carrying a name, or a map
// keyed by name.
func decodeNames(v any) ([]string, error) {
	switch typed := v.(type) {
	case nil:
		return []string{}, nil
	case map[string]any:
		names := make([]string, 0, len(typed))
		for name := range typed {
			names = append(names, name)
		}
		sort.Strings(names)
		return names, nil
	case []any:
		names := make([]string, 0, len(typed))
		for _, item := range typed {
			if obj, ok := item.(map[string]any); ok {
				var named struct {
					Name    string `mapstructure:"name"`
					JobRole string `mapstructure:"job_role"`
				}
				if err := weakDecode(obj, &named); err != nil {
					return nil, err
				}
				if named.JobRole != "" {
					names = append(names, named.JobRole)
				} else {
					names = append(names, named.Name)
				}
				continue
			}

			var name string
			if err := weakDecode(item, &name); err != nil {
				return nil, err
			}
			names = append(names, name)
		}
		return names, nil
	default:
		return nil, fmt.Errorf("unexpected names payload %T", v)
	}
}

func weakDecode(input, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           output,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}
