package cloudflare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"

	"github.com/funnelhub/domainstack/config"
	"github.com/funnelhub/domainstack/interfaces"
	er "github.com/funnelhub/domainstack/internal/errors"
	"github.com/funnelhub/domainstack/internal/tracing"
)

// Cloudflare for SaaS API: https://developers.cloudflare.com/cloudflare-for-platforms/cloudflare-for-saas/
type cloudflareService struct {
	cfg    *config.CloudflareConfig
	client *http.Client
}

func NewCloudflareService(cfg *config.CloudflareConfig) interfaces.CloudflareService {
	return &cloudflareService{
		cfg: cfg,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// apiEnvelope is the standard Cloudflare v4 response wrapper.
type apiEnvelope struct {
	Success bool `json:"success"`
	Errors  []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
	Result json.RawMessage `json:"result"`
}

func (s *cloudflareService) IsConfigured() bool {
	return s.cfg.ApiToken != "" && s.cfg.ZoneID != "" && s.cfg.SaaSTarget != "" && s.cfg.PlatformMainDomain != ""
}

func (s *cloudflareService) Config() interfaces.ProvisioningConfig {
	return interfaces.ProvisioningConfig{
		ZoneID:             s.cfg.ZoneID,
		SaaSTarget:         s.cfg.SaaSTarget,
		PlatformMainDomain: s.cfg.PlatformMainDomain,
	}
}

func (s *cloudflareService) CreateCustomHostname(ctx context.Context, hostname string) (*interfaces.CustomHostname, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "CloudflareService.CreateCustomHostname")
	defer span.Finish()
	tracing.TagComponentProvisioning(span)
	tracing.TagHostname(span, hostname)

	payload := map[string]interface{}{
		"hostname": hostname,
		"ssl": map[string]interface{}{
			"method": "txt",
			"type":   "dv",
		},
	}

	var ch interfaces.CustomHostname
	err := s.do(ctx, http.MethodPost, fmt.Sprintf("/zones/%s/custom_hostnames", s.cfg.ZoneID), payload, &ch)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	span.LogFields(tracingLog.String("result.hostnameId", ch.ID))
	return &ch, nil
}

func (s *cloudflareService) GetCustomHostname(ctx context.Context, hostnameID string) (*interfaces.CustomHostname, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "CloudflareService.GetCustomHostname")
	defer span.Finish()
	tracing.TagComponentProvisioning(span)
	span.LogKV("hostnameId", hostnameID)

	var ch interfaces.CustomHostname
	err := s.do(ctx, http.MethodGet, fmt.Sprintf("/zones/%s/custom_hostnames/%s", s.cfg.ZoneID, hostnameID), nil, &ch)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	return &ch, nil
}

func (s *cloudflareService) DeleteCustomHostname(ctx context.Context, hostnameID string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "CloudflareService.DeleteCustomHostname")
	defer span.Finish()
	tracing.TagComponentProvisioning(span)
	span.LogKV("hostnameId", hostnameID)

	err := s.do(ctx, http.MethodDelete, fmt.Sprintf("/zones/%s/custom_hostnames/%s", s.cfg.ZoneID, hostnameID), nil, nil)
	if err != nil && !errors.Is(err, er.ErrProviderResourceNotFound) {
		tracing.TraceErr(span, err)
	}
	return err
}

func (s *cloudflareService) CreateSubdomainRecord(ctx context.Context, label string) (*interfaces.DNSRecord, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "CloudflareService.CreateSubdomainRecord")
	defer span.Finish()
	tracing.TagComponentProvisioning(span)
	span.LogKV("label", label)

	payload := map[string]interface{}{
		"type":    "CNAME",
		"name":    label,
		"content": s.cfg.SaaSTarget,
		"ttl":     1,
		"proxied": true,
	}

	var record interfaces.DNSRecord
	err := s.do(ctx, http.MethodPost, fmt.Sprintf("/zones/%s/dns_records", s.cfg.ZoneID), payload, &record)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	span.LogFields(tracingLog.String("result.recordId", record.ID))
	return &record, nil
}

func (s *cloudflareService) DeleteDNSRecord(ctx context.Context, zoneID, recordID string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "CloudflareService.DeleteDNSRecord")
	defer span.Finish()
	tracing.TagComponentProvisioning(span)
	span.LogKV("zoneId", zoneID, "recordId", recordID)

	err := s.do(ctx, http.MethodDelete, fmt.Sprintf("/zones/%s/dns_records/%s", zoneID, recordID), nil, nil)
	if err != nil && !errors.Is(err, er.ErrProviderResourceNotFound) {
		tracing.TraceErr(span, err)
	}
	return err
}

func (s *cloudflareService) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "failed to encode request body")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.cfg.Url+path, body)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.ApiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to call Cloudflare API")
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read Cloudflare response")
	}

	if resp.StatusCode == http.StatusNotFound {
		return er.ErrProviderResourceNotFound
	}

	var envelope apiEnvelope
	if err = json.Unmarshal(responseBody, &envelope); err != nil {
		return errors.Wrapf(err, "failed to parse Cloudflare response (status %d)", resp.StatusCode)
	}

	if !envelope.Success {
		for _, e := range envelope.Errors {
			// 1436: custom hostname not found, 81044: dns record not found
			if e.Code == 1436 || e.Code == 81044 {
				return er.ErrProviderResourceNotFound
			}
		}
		if len(envelope.Errors) > 0 {
			return errors.Errorf("Cloudflare API error %d: %s", envelope.Errors[0].Code, envelope.Errors[0].Message)
		}
		return errors.Errorf("Cloudflare API returned failure (status %d)", resp.StatusCode)
	}

	if out != nil {
		if err = json.Unmarshal(envelope.Result, out); err != nil {
			return errors.Wrap(err, "failed to decode Cloudflare result")
		}
	}

	return nil
}
