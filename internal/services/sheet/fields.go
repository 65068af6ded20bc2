package sheet

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/dnd-sheet/internal/domain/character"
	"github.com/KirkDiggler/dnd-sheet/internal/domain/path"
	"github.com/KirkDiggler/dnd-sheet/internal/domain/rulebook"
	dnderr "github.com/KirkDiggler/dnd-sheet/internal/errors"
)

// numericFallback is the value unparseable input becomes for fields where 0
// is not a sensible entry. Everything else falls back to 0.
var numericFallback = map[string]int{
	"identity.level": 1,
	"combat.hp.max":  1,
}

// setField writes raw text into the field at address, the way a form input
// would. The existing value decides how raw is read: numbers that fail to
// parse fall back to a safe default, booleans must parse. The edited record
// is validated, normalized and bound before it is returned.
func setField(schema *rulebook.Schema, rec *character.Record, address, raw string) (*character.Record, error) {
	if len(path.Split(address)) == 0 {
		return nil, dnderr.InvalidArgument("field address is required")
	}

	doc, err := rec.ToDocument()
	if err != nil {
		return nil, err
	}

	current, exists := path.Get(doc, address)
	var value any
	switch current.(type) {
	case float64:
		value = parseNumber(address, raw)
	case bool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, dnderr.InvalidArgumentf("%q expects true or false", address).
				WithMeta("address", address)
		}
		value = b
	case string:
		value = raw
	case map[string]any, []any:
		return nil, dnderr.InvalidArgumentf("%q is a section, not a field", address).
			WithMeta("address", address)
	default:
		if exists {
			// null in the document
			value = raw
			break
		}
		value = inferValue(raw)
	}

	path.Set(doc, address, value)

	updated, err := character.FromDocument(doc)
	if err != nil {
		return nil, dnderr.Wrapf(err, "cannot set %q", address).WithMeta("address", address)
	}
	if err := updated.Validate(); err != nil {
		return nil, dnderr.Wrapf(err, "cannot set %q", address).WithMeta("address", address)
	}
	updated.Normalize()
	updated.SeedClass(schema)
	if err := updated.Bind(schema); err != nil {
		return nil, dnderr.Wrapf(err, "cannot set %q", address)
	}
	return updated, nil
}

func parseNumber(address, raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return numericFallback[address]
	}
	return n
}

// inferValue types input for a field the record does not hold yet
func inferValue(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(trimmed); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(trimmed); err == nil {
		return b
	}
	return raw
}
