package extract

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// oracleReply mirrors the JSON object the oracle is contracted to return.
// Every field is nullable.
type oracleReply struct {
	Amount          *flexFloat `json:"amount"`
	Category        *string    `json:"category"`
	Description     *string    `json:"description"`
	TransactionType *string    `json:"transaction_type"`
	Date            *string    `json:"date"`
	TimeContext     *string    `json:"time_context"`
}

// flexFloat accepts both JSON numbers and numeric strings. Models
// occasionally quote amounts despite instructions.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		return fmt.Errorf("not a number: %s", string(data))
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", string(data))
	}
	*f = flexFloat(v)
	return nil
}

// decodeReply parses the oracle's raw reply into a structured object. The
// reply may be bare JSON or wrapped in Markdown code fences.
func decodeReply(raw string) (oracleReply, error) {
	var reply oracleReply

	clean := stripFences(raw)
	if clean == "" {
		return reply, fmt.Errorf("empty oracle reply")
	}

	if err := json.Unmarshal([]byte(clean), &reply); err != nil {
		return oracleReply{}, fmt.Errorf("decoding oracle reply: %w", err)
	}
	return reply, nil
}

// stripFences removes ``` / ```json wrappers and any stray prose around the
// JSON object.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// If there is still junk around the JSON object, keep only the first
	// '{' to the last '}'.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
