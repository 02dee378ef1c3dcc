package task

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	DateLayout = "2006.01.02"
	TimeLayout = "15:04"
)

func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", FormatTime(t.Time))), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	var err error
	t.Time, err = ParseTime(timestamp)
	return err
}

// Date renders the local date as 2006.01.02.
func (t Timestamp) Date() string {
	return t.Local().Format(DateLayout)
}

// Clock renders the local time of day as 15:04.
func (t Timestamp) Clock() string {
	return t.Local().Format(TimeLayout)
}

func (t Timestamp) String() string {
	return t.Date() + " " + t.Clock()
}

func FormatTime(v time.Time) string {
	return v.UTC().Format(time.RFC3339Nano)
}
