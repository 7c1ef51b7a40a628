package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// Interactive console client against a running instance. Logs in, keeps
// the session token, and prints each turn's intent, stage and grounding.

type loginResponse struct {
	Data struct {
		SessionToken string `json:"session_token"`
		AccessToken  string `json:"access_token"`
	} `json:"data"`
}

type turnResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		Reply    string            `json:"reply"`
		Intent   string            `json:"intent"`
		Stage    string            `json:"stage"`
		Grounded bool              `json:"grounded"`
		Slots    map[string]string `json:"slots"`
		Sources  []struct {
			Origin     string  `json:"origin"`
			Similarity float64 `json:"similarity"`
		} `json:"sources"`
	} `json:"data"`
}

func main() {
	godotenv.Load()

	baseURL := os.Getenv("SIMULATE_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000/api"
	}
	email := os.Getenv("SIMULATE_EMAIL")
	if email == "" {
		email = "simulator@example.com"
	}

	color.Cyan("🚀 Support chat simulator (%s)\n", baseURL)

	sessionToken, err := login(baseURL, email)
	if err != nil {
		color.Red("Login failed: %v", err)
		os.Exit(1)
	}
	color.Green("Logged in, session %s", sessionToken)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if message == "/quit" {
			return
		}

		turn, err := sendMessage(baseURL, sessionToken, message)
		if err != nil {
			color.Red("Turn failed: %v", err)
			continue
		}

		color.Yellow("[%s → %s, grounded=%v]", turn.Data.Intent, turn.Data.Stage, turn.Data.Grounded)
		if len(turn.Data.Slots) > 0 {
			color.Yellow("slots: %v", turn.Data.Slots)
		}
		for _, src := range turn.Data.Sources {
			color.Yellow("source: %s (%.2f)", src.Origin, src.Similarity)
		}
		color.Green("%s", turn.Data.Reply)
	}
}

func login(baseURL, email string) (string, error) {
	body, _ := json.Marshal(map[string]string{"email": email, "name": "Simulator"})
	resp, err := http.Post(baseURL+"/auth/v1/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %s: %s", resp.Status, raw)
	}

	var parsed loginResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", err
	}
	return parsed.Data.SessionToken, nil
}

func sendMessage(baseURL, sessionToken, message string) (*turnResponse, error) {
	body, _ := json.Marshal(map[string]string{"message": message})
	req, err := http.NewRequest(http.MethodPost, baseURL+"/chat/v1", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-Token", sessionToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %s: %s", resp.Status, raw)
	}

	var parsed turnResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, err
	}
	return &parsed, nil
}
