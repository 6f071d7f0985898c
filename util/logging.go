// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"fmt"
	"log"
	"net/http"
	"os"
)

// Severity is a level for audit and application log messages
type Severity int

// Severity levels, ordered per RFC 5424
const (
	ERROR Severity = 3
	ALERT Severity = 4
	INFO  Severity = 6
)

func (s Severity) String() string {
	switch s {
	case ERROR:
		return "ERROR"
	case ALERT:
		return "ALERT"
	case INFO:
		return "INFO"
	}
	return fmt.Sprintf("SEVERITY-%d", int(s))
}

// LogContext is the context for a log message
type LogContext interface {
	AppName() string
	SessionID() string
	LogRootDir() string
}

// BasicLogContext is a minimal LogContext for messages that have no
// operation of their own
type BasicLogContext struct {
	sessionID string
}

// AppName returns the application name
func (c *BasicLogContext) AppName() string {
	return "agro-insight-broker"
}

// SessionID returns a Session ID, creating one if needed
func (c *BasicLogContext) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = PsuUUID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *BasicLogContext) LogRootDir() string {
	return ""
}

var logger = log.New(os.Stderr, "", log.LstdFlags)

func writeLogMessage(context LogContext, severity Severity, message string) {
	app := "unknown"
	session := ""
	if context != nil {
		app = context.AppName()
		session = context.SessionID()
	}
	logger.Printf("[%v] %s (%s) %s", severity, app, session, message)
}

// LogInfo logs an informational message
func LogInfo(context LogContext, message string) {
	writeLogMessage(context, INFO, message)
}

// LogAlert logs a message that needs operator attention but is not
// itself an error
func LogAlert(context LogContext, message string) {
	writeLogMessage(context, ALERT, message)
}

// LogSimpleErr logs a message and its underlying error, and returns a
// single error combining both for the caller to propagate
func LogSimpleErr(context LogContext, message string, err error) Error {
	result := Error{LogMsg: message + err.Error(), SimpleMsg: message}
	result.Log(context, "")
	return result
}

// LogAuditInput is the set of inputs for an audit log message
type LogAuditInput struct {
	Actor    string
	Action   string
	Actee    string
	Message  string
	Severity Severity
}

// LogAudit logs an audit message recording who did what to whom
func LogAudit(context LogContext, input LogAuditInput) {
	writeLogMessage(context, input.Severity, fmt.Sprintf("AUDIT actor=%s action=%s actee=%s :: %s", input.Actor, input.Action, input.Actee, input.Message))
}

// Error is a richer error containing separate messages for the log and
// for the end user, plus any available HTTP detail
type Error struct {
	LogMsg     string
	SimpleMsg  string
	Response   string
	URL        string
	HTTPStatus int
	logged     bool
}

// Error implements the error interface, preferring the user-safe message
func (err Error) Error() string {
	if err.SimpleMsg != "" {
		return err.SimpleMsg
	}
	return err.LogMsg
}

// Log writes the error to the log exactly once and returns it so that
// callers can propagate the result directly
func (err Error) Log(context LogContext, prefix string) Error {
	if !err.logged {
		message := err.LogMsg
		if prefix != "" {
			message = prefix + ": " + message
		}
		if err.URL != "" {
			message += fmt.Sprintf("\nURL: %v", err.URL)
		}
		if err.HTTPStatus != 0 {
			message += fmt.Sprintf("\nHTTP Status: %v", err.HTTPStatus)
		}
		if err.Response != "" {
			message += fmt.Sprintf("\nResponse: %v", err.Response)
		}
		writeLogMessage(context, ERROR, message)
		err.logged = true
	}
	return err
}

// HTTPErr is an error holding the HTTP status it should be reported with
type HTTPErr struct {
	Status  int
	Message string
}

// Error implements the error interface
func (err HTTPErr) Error() string {
	return err.Message
}

// HTTPError writes a JSON error body and status code to the response
func HTTPError(request *http.Request, writer http.ResponseWriter, context LogContext, message string, status int) {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	fmt.Fprintf(writer, `{"error":%q}`, message)
}
