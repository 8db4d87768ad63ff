package questionbank

import (
	"encoding/json"
	"fmt"
	"os"
)

// questionJSON mirrors one entry of the bank file. The file is keyed by
// category, each holding an array of questions:
//
//	{
//	  "quantitative": [
//	    {"id": "q1", "question": "...", "options": ["...", "..."], "correct": 0}
//	  ],
//	  "logical": [...],
//	  "verbal": [...]
//	}
type questionJSON struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"correct"`
}

// LoadFile reads and validates a bank file. Any malformed record fails
// the whole load; validation is not deferred into the session.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank file: %w", err)
	}
	return Parse(data)
}

// Parse builds a Bank from raw JSON.
func Parse(data []byte) (*Bank, error) {
	var raw map[string][]questionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse bank file: %w", err)
	}

	bank := New()
	for rawCategory, entries := range raw {
		category, err := ParseCategory(rawCategory)
		if err != nil {
			return nil, fmt.Errorf("parse bank file: %w", err)
		}
		for _, e := range entries {
			q := Question{
				ID:       e.ID,
				Category: category,
				Prompt:   e.Question,
				Options:  e.Options,
				Correct:  e.Correct,
			}
			if err := bank.AddQuestion(q); err != nil {
				return nil, fmt.Errorf("parse bank file: %w", err)
			}
		}
	}
	return bank, nil
}
