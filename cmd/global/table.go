package global

import (
	"bytes"

	"github.com/mgutz/ansi"
	"github.com/tomlazar/table"
)

// RenderTable renders the given table with the common CLI styling.
func RenderTable(tab table.Table) (string, error) {
	var buf bytes.Buffer
	err := tab.WriteTable(&buf, &table.Config{
		ShowIndex:       false,
		Color:           !NoColor,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
