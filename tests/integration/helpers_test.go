//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"testing"
	"time"
)

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func baseURL() string {
	return envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8000")
}

func jsonBody(t *testing.T, payload any) *bytes.Reader {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return bytes.NewReader(body)
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	return out
}

func createUser(t *testing.T, prefix string) string {
	t.Helper()

	userID := fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
	resp := postJSON(t, fmt.Sprintf("%s/users", baseURL()), map[string]string{"user_id": userID})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected create user status: %d", resp.StatusCode)
	}
	return userID
}

func createDocument(t *testing.T, userID, content string) string {
	t.Helper()

	resp := postJSON(t, fmt.Sprintf("%s/documents", baseURL()), map[string]any{
		"user_id":          userID,
		"title":            "Integration Fixture",
		"document_content": content,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected create document status: %d", resp.StatusCode)
	}

	envelope := decodeEnvelope(t, resp)
	data, ok := envelope["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing data in create document response: %v", envelope)
	}
	id, _ := data["id"].(string)
	if id == "" {
		t.Fatalf("empty document id in response: %v", data)
	}
	return id
}

func uploadFile(t *testing.T, filename string, content []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := io.Copy(fw, bytes.NewReader(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	resp, err := http.Post(fmt.Sprintf("%s/parse_file", baseURL()), mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("upload request failed: %v", err)
	}
	return resp
}
