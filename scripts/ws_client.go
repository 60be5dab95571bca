// Package main runs a demo WebSocket client against a local API: it
// starts a streaming solve and prints progress events until the run
// finishes.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	base := fmt.Sprintf("http://localhost:%s", port)

	// Kick off a streaming solve on a small random-ish problem.
	body := []byte(`{
		"stream": true,
		"problem": {
			"name": "demo",
			"depot": {"id": "depot", "x": 50, "y": 50},
			"locations": [
				{"id": "a", "x": 10, "y": 10}, {"id": "b", "x": 90, "y": 15},
				{"id": "c", "x": 20, "y": 85}, {"id": "d", "x": 75, "y": 80},
				{"id": "e", "x": 50, "y": 5}, {"id": "f", "x": 5, "y": 50},
				{"id": "g", "x": 95, "y": 55}, {"id": "h", "x": 60, "y": 95}
			],
			"vehicles": 3
		},
		"params": {"seed": 42}
	}`)
	req, _ := http.NewRequest(http.MethodPost, base+"/v1/solve", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()
	var acc struct {
		RunID string `json:"runId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&acc); err != nil {
		log.Fatal(err)
	}
	if acc.RunID == "" {
		log.Fatalf("no run id in response (status %d)", resp.StatusCode)
	}
	log.Printf("run %s accepted, attaching to progress stream", acc.RunID)

	u := url.URL{Scheme: "ws", Host: "localhost:" + port, Path: "/v1/runs/" + acc.RunID + "/progress/ws"}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = conn.Close() }()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Minute))
	for {
		var evt struct {
			Type string         `json:"type"`
			Data map[string]any `json:"data"`
		}
		if err := conn.ReadJSON(&evt); err != nil {
			log.Printf("stream closed: %v", err)
			return
		}
		switch evt.Type {
		case "solve.progress":
			fmt.Printf("generation %v: best=%.2f avg=%.2f\n", evt.Data["generation"], evt.Data["best"], evt.Data["avg"])
		case "solve.completed":
			fmt.Printf("done: distance=%.2f imbalance=%.2f after %v generations\n",
				evt.Data["totalDistance"], evt.Data["imbalance"], evt.Data["generations"])
			return
		case "solve.failed":
			log.Fatalf("solve failed: %v", evt.Data["error"])
		}
	}
}
