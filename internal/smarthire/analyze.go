package smarthire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	predictPath       = "/predict"
	analyzeTextPath   = "/analyze/text"
	analyzeUploadPath = "/analyze/upload"
	uploadField       = "file"

	sniffLength = 512
)

type predictRequest struct {
	ResumeText string `json:"resume_text"`
	TopK       int    `json:"top_k"`
}

type analyzeTextRequest struct {
	Text string `json:"text"`
}

// AnalyzeText validates the resume text and submits it to the backend.
func (c *Client) AnalyzeText(ctx context.Context, text string) (*Result, error) {
	text = strings.TrimSpace(text)
	if err := c.validateText(text); err != nil {
		return nil, err
	}

	c.logger.Info("analyzing resume text",
		zap.String("profile", string(c.profile)),
		zap.Int("length", utf8.RuneCountInString(text)),
	)

	if c.profile == ProfileService {
		var resp analyzeResponse
		if err := c.postJSON(ctx, analyzeTextPath, &analyzeTextRequest{Text: text}, &resp); err != nil {
			return nil, err
		}
		return resp.toResult()
	}

	var resp predictResponse
	if err := c.postJSON(ctx, predictPath, &predictRequest{ResumeText: text, TopK: c.TopK}, &resp); err != nil {
		return nil, err
	}

	return resp.toResult(), nil
}

// AnalyzeFile submits a resume file. The service profile uploads it as is; the
// dashboard profile has no upload endpoint and only accepts plain-text files.
func (c *Client) AnalyzeFile(ctx context.Context, path string) (*Result, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, &ValidationError{Reason: msgNoFile}
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, validationErrorf("file %q does not exist", path)
		}
		return nil, fmt.Errorf("open resume file: %w", err)
	}
	defer file.Close()

	filename := filepath.Base(path)

	if c.profile == ProfileDashboard {
		text, err := readPlainText(file, filename)
		if err != nil {
			return nil, err
		}

		result, err := c.AnalyzeText(ctx, text)
		if err != nil {
			return nil, err
		}
		result.Filename = filename
		return result, nil
	}

	c.logger.Info("uploading resume file",
		zap.String("profile", string(c.profile)),
		zap.String("filename", filename),
	)

	var resp analyzeResponse
	if err := c.postFile(ctx, analyzeUploadPath, uploadField, filename, file, &resp); err != nil {
		return nil, err
	}

	result, err := resp.toResult()
	if err != nil {
		return nil, err
	}
	if result.Filename == "" {
		result.Filename = filename
	}

	return result, nil
}

func (c *Client) validateText(text string) error {
	if text == "" {
		return &ValidationError{Reason: msgEmptyText}
	}

	if c.MinTextLength > 0 && utf8.RuneCountInString(text) < c.MinTextLength {
		return validationErrorf("please provide more resume text (at least %d characters)", c.MinTextLength)
	}

	return nil
}

func readPlainText(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read resume file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(filename), ".txt") {
		return string(data), nil
	}

	sniff := data
	if len(sniff) > sniffLength {
		sniff = sniff[:sniffLength]
	}
	if strings.HasPrefix(http.DetectContentType(sniff), "text/plain") {
		return string(data), nil
	}

	return "", validationErrorf("file %q is not plain text; the %s profile accepts only text, use the %s profile to upload documents",
		filename, ProfileDashboard, ProfileService)
}
