package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Direction is the traffic direction of a network log entry.
type Direction string

const (
	Incoming Direction = "Incoming"
	Outgoing Direction = "Outgoing"
)

// Valid reports whether d is one of the known directions.
func (d Direction) Valid() bool {
	return d == Incoming || d == Outgoing
}

// UnmarshalJSON rejects directions other than Incoming and Outgoing so that
// malformed records are caught when a response is decoded.
func (d *Direction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("direction: %w", err)
	}
	if !Direction(s).Valid() {
		return fmt.Errorf("direction: unknown value %q", s)
	}
	*d = Direction(s)
	return nil
}

// NetworkLog is one entry of a network traffic stream.
type NetworkLog struct {
	Time        string    `json:"time" yaml:"time"`
	Severity    string    `json:"severity" yaml:"severity"`
	Type        Direction `json:"type" yaml:"type"`
	Source      string    `json:"source" yaml:"source"`
	Destination string    `json:"destination" yaml:"destination"`
	Port        string    `json:"port" yaml:"port"`
	Protocol    string    `json:"protocol" yaml:"protocol"`
}

// Employee is a roster entry.
type Employee struct {
	EmployeeID string `json:"employee_id" yaml:"employee_id"`
	Name       string `json:"name" yaml:"name"`
	Image      string `json:"image" yaml:"image"`
	Position   string `json:"position" yaml:"position"`
	Email      string `json:"email" yaml:"email"`
}

// Report is an employee as seen from their manager.
type Report struct {
	Name   string `json:"name" yaml:"name"`
	Task   string `json:"task" yaml:"task"`
	Domain string `json:"domain" yaml:"domain"`
}

// Manager groups the employees reporting to one person.
type Manager struct {
	Name      string   `json:"name" yaml:"name"`
	Employees []Report `json:"employees" yaml:"employees"`
}

// PolicyIP binds an address to a policy.
type PolicyIP struct {
	PolicyID int    `json:"policy_id" yaml:"policy_id"`
	Address  string `json:"address" yaml:"address"`
}

// PolicyPort binds a port number to a policy.
type PolicyPort struct {
	PolicyID int    `json:"policy_id" yaml:"policy_id"`
	Number   string `json:"number" yaml:"number"`
}

// Policy is a network policy applied to an IP.
type Policy struct {
	ID        int          `json:"ID" yaml:"id"`
	CreatedAt string       `json:"CreatedAt" yaml:"created_at"`
	Name      string       `json:"name" yaml:"name"`
	Type      string       `json:"type" yaml:"type"`
	IPs       []PolicyIP   `json:"ips" yaml:"ips"`
	Ports     []PolicyPort `json:"ports" yaml:"ports"`
}

// Task is a locally managed work item.
type Task struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AssigneeID  string `json:"assigneeId"`
	Deadline    string `json:"deadline"` // YYYY-MM-DD
}

// NewTaskID returns the id of a task created at t (milliseconds since epoch).
func NewTaskID(t time.Time) int64 {
	return t.UnixMilli()
}

// CheckoutDetail is everything shown for one IP on the checkout page.
type CheckoutDetail struct {
	IP       string
	Logs     []NetworkLog
	Ports    []string
	Policies []Policy
}
