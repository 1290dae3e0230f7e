package correctvt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/viant/entity-corrector/corrector"
	"github.com/viant/entity-corrector/metric"
	"github.com/viant/entity-corrector/store"
)

type tableOptions struct {
	entityTable string
	opts        []corrector.Option
}

// parseTableOptions reads USING entity_correct(...) arguments: an optional
// bare entity table name followed by key=value settings. Unknown keys and
// malformed values are rejected.
func parseTableOptions(args []string) (tableOptions, error) {
	out := tableOptions{entityTable: store.DefaultTable}
	for i, raw := range args {
		a := strings.Trim(strings.TrimSpace(raw), `'"`)
		if a == "" {
			continue
		}
		parts := strings.SplitN(a, "=", 2)
		if len(parts) != 2 {
			if i != 0 {
				return out, fmt.Errorf("correctvt: unexpected argument %q; want key=value", a)
			}
			out.entityTable = a
			continue
		}
		key := strings.ToLower(strings.TrimSpace(parts[0]))
		val := strings.Trim(strings.TrimSpace(parts[1]), `'"`)
		switch key {
		case "max_size":
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return out, fmt.Errorf("correctvt: max_size must be a positive integer, got %q", val)
			}
			out.opts = append(out.opts, corrector.WithMaxSize(n))
		case "index":
			switch strings.ToLower(val) {
			case "tree", "vptree", "indexed", "on", "true":
				out.opts = append(out.opts, corrector.WithIndex(true))
			case "linear", "off", "false":
				out.opts = append(out.opts, corrector.WithIndex(false))
			default:
				return out, fmt.Errorf("correctvt: index must be tree or linear, got %q", val)
			}
		case "metric":
			name := metric.Name(strings.ToLower(val))
			if name.Function() == nil {
				return out, fmt.Errorf("correctvt: unsupported metric %q", val)
			}
			out.opts = append(out.opts, corrector.WithMetric(name))
		default:
			return out, fmt.Errorf("correctvt: unknown option %q", key)
		}
	}
	return out, nil
}
