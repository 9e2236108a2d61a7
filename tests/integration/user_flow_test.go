//go:build integration
// +build integration

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
)

func TestUserLifecycle(t *testing.T) {
	userID := createUser(t, "lifecycle")

	// Creating the same user again succeeds
	resp := postJSON(t, fmt.Sprintf("%s/users", baseURL()), map[string]string{"user_id": userID})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("recreate should be idempotent, got status %d", resp.StatusCode)
	}

	// Fresh user starts with an empty score list
	getResp, err := http.Get(fmt.Sprintf("%s/users/%s/scores", baseURL(), userID))
	if err != nil {
		t.Fatalf("get scores failed: %v", err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected get scores status: %d", getResp.StatusCode)
	}

	envelope := decodeEnvelope(t, getResp)
	data, _ := envelope["data"].(map[string]interface{})
	scores, ok := data["topic_scores"].([]interface{})
	if !ok {
		t.Fatalf("topic_scores missing or not a list: %v", data)
	}
	if len(scores) != 0 {
		t.Fatalf("expected empty score list, got %v", scores)
	}
}

func TestReplaceUserScores(t *testing.T) {
	userID := createUser(t, "scores")

	payload := map[string]any{
		"topic_scores": []map[string]float64{{"Algebra": 4.5}, {"Geometry": 2.0}},
	}
	req, err := http.NewRequest(http.MethodPut, fmt.Sprintf("%s/users/%s/scores", baseURL(), userID), jsonBody(t, payload))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT scores failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected PUT scores status: %d", resp.StatusCode)
	}

	getResp, err := http.Get(fmt.Sprintf("%s/users/%s/scores", baseURL(), userID))
	if err != nil {
		t.Fatalf("get scores failed: %v", err)
	}
	defer getResp.Body.Close()

	envelope := decodeEnvelope(t, getResp)
	data, _ := envelope["data"].(map[string]interface{})
	raw, err := json.Marshal(data["topic_scores"])
	if err != nil {
		t.Fatalf("re-marshal scores: %v", err)
	}
	want := `[{"Algebra":4.5},{"Geometry":2}]`
	if string(raw) != want {
		t.Fatalf("expected scores %s, got %s", want, raw)
	}
}

func TestReplaceUserScoresRejectsOutOfRange(t *testing.T) {
	userID := createUser(t, "badscores")

	payload := map[string]any{
		"topic_scores": []map[string]float64{{"Algebra": 11}},
	}
	req, err := http.NewRequest(http.MethodPut, fmt.Sprintf("%s/users/%s/scores", baseURL(), userID), jsonBody(t, payload))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT scores failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-range score, got %d", resp.StatusCode)
	}
}

func TestGetUnknownUser(t *testing.T) {
	resp, err := http.Get(fmt.Sprintf("%s/users/does-not-exist-%d", baseURL(), 0))
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", resp.StatusCode)
	}
}
