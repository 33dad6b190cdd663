package launch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/atomicstack/popup-apps/internal/catalog"
	"github.com/atomicstack/popup-apps/internal/httpclient"
	"github.com/atomicstack/popup-apps/internal/logging/events"
	"github.com/google/uuid"
)

// LaunchPath is the supervisor endpoint that starts an app.
const LaunchPath = "/api/supervisor/launch"

const (
	unknownReason     = "Unknown error"
	unexpectedFailure = "An unexpected error occurred."
)

// Result is a successful launch.
type Result struct {
	URL     string
	Message string
}

// Error describes a launch the supervisor refused or could not serve.
// Reason carries the server-provided text when there was one.
type Error struct {
	App    string
	Status int
	Reason string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("launch %s: %v", e.App, e.Err)
	case e.Reason != "":
		return fmt.Sprintf("launch %s: %s", e.App, e.Reason)
	case e.Status != 0:
		return fmt.Sprintf("launch %s: status %d", e.App, e.Status)
	default:
		return fmt.Sprintf("launch %s: no destination returned", e.App)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Transport reports whether the launch never got a usable reply.
func (e *Error) Transport() bool {
	return e.Err != nil
}

// UserMessage renders err as status-line text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var launchErr *Error
	if !errors.As(err, &launchErr) || launchErr.Transport() {
		return unexpectedFailure
	}
	reason := strings.TrimSpace(launchErr.Reason)
	if reason == "" {
		reason = unknownReason
	}
	return "Launch failed: " + reason
}

// Launcher starts apps.
type Launcher interface {
	Launch(ctx context.Context, app catalog.AppDescriptor) (Result, error)
}

// Client talks to the supervisor.
type Client struct {
	http *httpclient.Client
}

// NewClient returns a launch client. The http client's base URL must point
// at the supervisor.
func NewClient(http *httpclient.Client) *Client {
	return &Client{http: http}
}

type launchRequest struct {
	Source   string `json:"source"`
	Category string `json:"category,omitempty"`
	Folder   string `json:"folder"`
}

type launchResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Launch asks the supervisor to start app and returns its destination URL.
func (c *Client) Launch(ctx context.Context, app catalog.AppDescriptor) (Result, error) {
	req, err := c.http.Request(ctx)
	if err != nil {
		return Result{}, &Error{App: app.Name, Err: err}
	}
	requestID := uuid.NewString()
	events.Launch.Request(requestID, app.Source, app.Category, app.Folder)
	resp, err := req.
		SetHeader("X-Request-ID", requestID).
		SetHeader("Content-Type", "application/json").
		SetBody(launchRequest{Source: app.Source, Category: app.Category, Folder: app.Folder}).
		Post(LaunchPath)
	if err != nil {
		return Result{}, &Error{App: app.Name, Err: err}
	}

	var body launchResponse
	if decodeErr := json.Unmarshal(resp.Body(), &body); decodeErr != nil {
		return Result{}, &Error{App: app.Name, Status: resp.StatusCode(), Err: fmt.Errorf("decode response: %w", decodeErr)}
	}

	url := strings.TrimSpace(body.URL)
	if !resp.IsError() && body.Success && url != "" {
		return Result{URL: url, Message: body.Message}, nil
	}
	reason := strings.TrimSpace(body.Error)
	if reason == "" {
		reason = strings.TrimSpace(body.Message)
	}
	status := 0
	if resp.IsError() {
		status = resp.StatusCode()
	}
	return Result{}, &Error{App: app.Name, Status: status, Reason: reason}
}
