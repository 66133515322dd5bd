package functions

import (
	"time"

	"github.com/spf13/cast"

	"github.com/vectorsql/engine/sql"
)

func registerScalars(r *Registry) {
	registerCasts(r)

	r.RegisterScalar(sql.FunctionSignature{
		Name: "UPPER", MinArity: 1, MaxArity: 1, ReturnType: sql.Varchar,
		Scalar: elementwiseString(func(s string) string { return upper(s) }),
	})
	r.RegisterScalar(sql.FunctionSignature{
		Name: "LOWER", MinArity: 1, MaxArity: 1, ReturnType: sql.Varchar,
		Scalar: elementwiseString(func(s string) string { return lower(s) }),
	})
	r.RegisterScalar(sql.FunctionSignature{
		Name: "LENGTH", MinArity: 1, MaxArity: 1, ReturnType: sql.Int64,
		Scalar: func(ctx *sql.Context, args []sql.Vector) (sql.Vector, error) {
			in := args[0]
			out := make([]interface{}, len(in.Values))
			for i, v := range in.Values {
				if v == nil {
					continue
				}
				s, _ := cast.ToStringE(v)
				out[i] = int64(len(s))
			}
			return sql.Vector{Type: sql.Int64, Values: out}, nil
		},
	}, "LEN")
	r.RegisterScalar(sql.FunctionSignature{
		Name: "ROUND", MinArity: 1, MaxArity: 2, ReturnType: sql.Float64,
		Scalar: func(ctx *sql.Context, args []sql.Vector) (sql.Vector, error) {
			in := args[0]
			out := make([]interface{}, len(in.Values))
			for i, v := range in.Values {
				if v == nil {
					continue
				}
				f, err := cast.ToFloat64E(v)
				if err != nil {
					return sql.Vector{}, err
				}
				out[i] = roundTo(f, 0)
			}
			return sql.Vector{Type: sql.Float64, Values: out}, nil
		},
	})
	r.RegisterScalar(sql.FunctionSignature{
		Name: "GET", MinArity: 2, MaxArity: 2, ReturnType: sql.Unknown,
		Scalar: func(ctx *sql.Context, args []sql.Vector) (sql.Vector, error) {
			target, key := args[0], args[1]
			out := make([]interface{}, len(target.Values))
			for i, v := range target.Values {
				if v == nil {
					continue
				}
				k := key.Values[0]
				if i < len(key.Values) {
					k = key.Values[i]
				}
				out[i] = mapAccess(v, k)
			}
			return sql.Vector{Type: sql.Unknown, Values: out}, nil
		},
	})
	r.RegisterScalar(sql.FunctionSignature{
		Name: "DATEPART", MinArity: 2, MaxArity: 2, ReturnType: sql.Int64,
		Scalar: func(ctx *sql.Context, args []sql.Vector) (sql.Vector, error) {
			part, target := args[0], args[1]
			out := make([]interface{}, len(target.Values))
			p := ""
			if len(part.Values) > 0 {
				p, _ = cast.ToStringE(part.Values[0])
			}
			for i, v := range target.Values {
				if v == nil {
					continue
				}
				t, err := cast.ToTimeE(v)
				if err != nil {
					continue
				}
				out[i] = datePart(p, t)
			}
			return sql.Vector{Type: sql.Int64, Values: out}, nil
		},
	})
	r.RegisterScalar(sql.FunctionSignature{
		Name: "COALESCE", MinArity: 1, MaxArity: -1, ReturnType: sql.Unknown,
		Scalar: func(ctx *sql.Context, args []sql.Vector) (sql.Vector, error) {
			if len(args) == 0 {
				return sql.Vector{}, nil
			}
			n := args[0].Len()
			out := make([]interface{}, n)
			for i := 0; i < n; i++ {
				for _, a := range args {
					if i < len(a.Values) && a.Values[i] != nil {
						out[i] = a.Values[i]
						break
					}
				}
			}
			return sql.Vector{Type: args[0].Type, Values: out}, nil
		},
	})
}

// registerCasts implements the `<TYPE>(arg)` / `TRY_<TYPE>(arg)` family
// lowers CAST/TRY_CAST/SAFE_CAST to.
func registerCasts(r *Registry) {
	kinds := []struct {
		name string
		typ  sql.Type
		conv func(interface{}) (interface{}, error)
	}{
		{"VARCHAR", sql.Varchar, func(v interface{}) (interface{}, error) { return cast.ToStringE(v) }},
		{"INTEGER", sql.Int64, func(v interface{}) (interface{}, error) { return cast.ToInt64E(v) }},
		{"DOUBLE", sql.Float64, func(v interface{}) (interface{}, error) { return cast.ToFloat64E(v) }},
		{"BOOLEAN", sql.Boolean, func(v interface{}) (interface{}, error) { return cast.ToBoolE(v) }},
		{"TIMESTAMP", sql.Timestamp, func(v interface{}) (interface{}, error) {
			t, err := cast.ToTimeE(v)
			if err != nil {
				return nil, err
			}
			return t, nil
		}},
	}
	for _, k := range kinds {
		k := k
		r.RegisterScalar(sql.FunctionSignature{
			Name: k.name, MinArity: 1, MaxArity: 1, ReturnType: k.typ,
			Scalar: castKernel(k.typ, k.conv, false),
		})
		r.RegisterScalar(sql.FunctionSignature{
			Name: "TRY_" + k.name, MinArity: 1, MaxArity: 1, ReturnType: k.typ,
			Scalar: castKernel(k.typ, k.conv, true),
		})
	}
}

func castKernel(typ sql.Type, conv func(interface{}) (interface{}, error), try bool) sql.Kernel {
	return func(ctx *sql.Context, args []sql.Vector) (sql.Vector, error) {
		in := args[0]
		out := make([]interface{}, len(in.Values))
		for i, v := range in.Values {
			if v == nil {
				continue
			}
			cv, err := conv(v)
			if err != nil {
				if try {
					out[i] = nil
					continue
				}
				return sql.Vector{}, err
			}
			out[i] = cv
		}
		return sql.Vector{Type: typ, Values: out}, nil
	}
}

func elementwiseString(f func(string) string) sql.Kernel {
	return func(ctx *sql.Context, args []sql.Vector) (sql.Vector, error) {
		in := args[0]
		out := make([]interface{}, len(in.Values))
		for i, v := range in.Values {
			if v == nil {
				continue
			}
			s, err := cast.ToStringE(v)
			if err != nil {
				return sql.Vector{}, err
			}
			out[i] = f(s)
		}
		return sql.Vector{Type: sql.Varchar, Values: out}, nil
	}
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c - 'A' + 'a'
		}
	}
	return string(b)
}

func roundTo(f float64, places int) float64 {
	shift := 1.0
	for i := 0; i < places; i++ {
		shift *= 10
	}
	if f >= 0 {
		return float64(int64(f*shift+0.5)) / shift
	}
	return float64(int64(f*shift-0.5)) / shift
}

func mapAccess(target, key interface{}) interface{} {
	switch m := target.(type) {
	case map[string]interface{}:
		k, _ := cast.ToStringE(key)
		return m[k]
	default:
		return nil
	}
}

func datePart(part string, t time.Time) int64 {
	switch upper(part) {
	case "YEAR":
		return int64(t.Year())
	case "MONTH":
		return int64(t.Month())
	case "DAY":
		return int64(t.Day())
	case "HOUR":
		return int64(t.Hour())
	case "MINUTE":
		return int64(t.Minute())
	case "SECOND":
		return int64(t.Second())
	case "DOW":
		return int64(t.Weekday())
	default:
		return 0
	}
}
