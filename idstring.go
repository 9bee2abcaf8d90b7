package recipelab

import (
	"bytes"
	"encoding/json"

	"github.com/blutspende/recipelab/utils"
)

// idString carries an identifier over the API. Clients may send it as JSON
// number or string, it is always written back as a string.
type idString string

func (s *idString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*s = idString(value)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*s = idString(number.String())
	return nil
}

func (s idString) int64() (int64, error) {
	return utils.ParseID(string(s))
}

func newIDString(id int64) idString {
	return idString(utils.FormatID(id))
}
