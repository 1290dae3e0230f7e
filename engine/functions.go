package engine

import (
	"database/sql/driver"
	"fmt"
	"sync"

	sqlite "modernc.org/sqlite"

	"github.com/viant/entity-corrector/metric"
	"github.com/viant/entity-corrector/vector"
	"github.com/viant/entity-corrector/vocab"
)

// DistanceFunctionName is the SQL name of the edit distance function.
const DistanceFunctionName = "edit_distance"

var registerOnce sync.Once

// RegisterDistanceFunctions registers edit_distance(a, b) with the driver so
// it is available on connections opened after this call.
//
//	edit_distance(TEXT, TEXT) -> raw edit distance of the lowercased strings
//	edit_distance(BLOB, BLOB) -> edit distance of vectors encoded by vector.EncodeBlob
//
// NULL arguments yield NULL; mixing TEXT and BLOB is an error.
func RegisterDistanceFunctions() error {
	var err error
	registerOnce.Do(func() {
		err = sqlite.RegisterDeterministicScalarFunction(DistanceFunctionName, 2, editDistanceImpl)
	})
	return err
}

func editDistanceImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("edit_distance: expected 2 arguments, got %d", len(args))
	}
	if args[0] == nil || args[1] == nil {
		return nil, nil
	}
	switch a := args[0].(type) {
	case string:
		b, ok := args[1].(string)
		if !ok {
			return nil, fmt.Errorf("edit_distance: argument types differ: TEXT vs %T", args[1])
		}
		return int64(metric.Strings(vocab.Normalize(a), vocab.Normalize(b))), nil
	case []byte:
		b, ok := args[1].([]byte)
		if !ok {
			return nil, fmt.Errorf("edit_distance: argument types differ: BLOB vs %T", args[1])
		}
		va, err := vector.DecodeBlob(a)
		if err != nil {
			return nil, err
		}
		vb, err := vector.DecodeBlob(b)
		if err != nil {
			return nil, err
		}
		return int64(metric.Vectors(va, vb)), nil
	default:
		return nil, fmt.Errorf("edit_distance: unsupported argument type %T; want TEXT or BLOB", args[0])
	}
}
