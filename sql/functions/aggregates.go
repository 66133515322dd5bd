package functions

import (
	"math"
	"sort"

	"github.com/spf13/cast"

	"github.com/vectorsql/engine/sql"
)

// registerAggregates wires the vectorized aggregate kernels // names: ALL, ANY, APPROX_MEDIAN, COUNT, COUNT_DISTINCT, DISTINCT, LIST,
// MAX, MEAN (alias AVG/AVERAGE), MIN, MIN_MAX, PRODUCT, STDDEV, SUM,
// QUANTILES, VARIANCE.
func registerAggregates(r *Registry) {
	r.RegisterAggregate(sql.FunctionSignature{
		Name: "COUNT", MinArity: 0, MaxArity: 1, ReturnType: sql.Int64,
		Aggregate: countKernel,
	})
	r.RegisterAggregate(sql.FunctionSignature{
		Name: "COUNT_DISTINCT", MinArity: 1, MaxArity: 1, ReturnType: sql.Int64,
		Aggregate: countDistinctKernel,
	})
	r.RegisterAggregate(sql.FunctionSignature{
		Name: "SUM", MinArity: 1, MaxArity: 1, ReturnType: sql.Float64,
		Aggregate: numericFold(0, func(acc, v float64) float64 { return acc + v }),
	})
	r.RegisterAggregate(sql.FunctionSignature{
		Name: "PRODUCT", MinArity: 1, MaxArity: 1, ReturnType: sql.Float64,
		Aggregate: numericFold(1, func(acc, v float64) float64 { return acc * v }),
	})
	r.RegisterAggregate(sql.FunctionSignature{
		Name: "MIN", MinArity: 1, MaxArity: 1, ReturnType: sql.Unknown,
		Aggregate: minMaxKernel(true),
	})
	r.RegisterAggregate(sql.FunctionSignature{
		Name: "MAX", MinArity: 1, MaxArity: 1, ReturnType: sql.Unknown,
		Aggregate: minMaxKernel(false),
	})
	r.RegisterAggregate(sql.FunctionSignature{
		Name: "MIN_MAX", MinArity: 1, MaxArity: 1, ReturnType: sql.List,
		Aggregate: minMaxPairKernel,
	})
	r.RegisterAggregate(sql.FunctionSignature{
		Name: "MEAN", MinArity: 1, MaxArity: 1, ReturnType: sql.Float64,
		Aggregate: meanKernel,
	}, "AVG", "AVERAGE")
	r.RegisterAggregate(sql.FunctionSignature{
		Name: "VARIANCE", MinArity: 1, MaxArity: 1, ReturnType: sql.Float64,
		Aggregate: varianceKernel,
	})
	r.RegisterAggregate(sql.FunctionSignature{
		Name: "STDDEV", MinArity: 1, MaxArity: 1, ReturnType: sql.Float64,
		Aggregate: func(ctx *sql.Context, args []sql.Vector) (interface{}, sql.Type, error) {
			v, typ, err := varianceKernel(ctx, args)
			if err != nil || v == nil {
				return v, typ, err
			}
			return math.Sqrt(v.(float64)), sql.Float64, nil
		},
	})
	r.RegisterAggregate(sql.FunctionSignature{
		Name: "LIST", MinArity: 1, MaxArity: 1, ReturnType: sql.List,
		Aggregate: func(ctx *sql.Context, args []sql.Vector) (interface{}, sql.Type, error) {
			out := make([]interface{}, 0, len(args[0].Values))
			out = append(out, args[0].Values...)
			return out, sql.List, nil
		},
	})
	r.RegisterAggregate(sql.FunctionSignature{
		Name: "DISTINCT", MinArity: 1, MaxArity: 1, ReturnType: sql.List,
		Aggregate: func(ctx *sql.Context, args []sql.Vector) (interface{}, sql.Type, error) {
			seen := map[interface{}]bool{}
			var out []interface{}
			for _, v := range args[0].Values {
				if v == nil || seen[v] {
					continue
				}
				seen[v] = true
				out = append(out, v)
			}
			return out, sql.List, nil
		},
	})
	r.RegisterAggregate(sql.FunctionSignature{
		Name: "ANY", MinArity: 1, MaxArity: 1, ReturnType: sql.Boolean,
		Aggregate: boolFold(false, func(acc, v bool) bool { return acc || v }),
	})
	r.RegisterAggregate(sql.FunctionSignature{
		Name: "ALL", MinArity: 1, MaxArity: 1, ReturnType: sql.Boolean,
		Aggregate: boolFold(true, func(acc, v bool) bool { return acc && v }),
	})
	r.RegisterAggregate(sql.FunctionSignature{
		Name: "APPROX_MEDIAN", MinArity: 1, MaxArity: 1, ReturnType: sql.Float64,
		Aggregate: quantileKernel(0.5),
	})
	r.RegisterAggregate(sql.FunctionSignature{
		Name: "QUANTILES", MinArity: 2, MaxArity: 2, ReturnType: sql.List,
		Aggregate: func(ctx *sql.Context, args []sql.Vector) (interface{}, sql.Type, error) {
			sorted, ok := numericValues(args[0])
			if !ok || len(sorted) == 0 {
				return nil, sql.List, nil
			}
			sort.Float64s(sorted)
			out := make([]interface{}, 0, len(args[1].Values))
			for _, qv := range args[1].Values {
				q, err := cast.ToFloat64E(qv)
				if err != nil {
					return nil, sql.List, err
				}
				out = append(out, percentile(sorted, q))
			}
			return out, sql.List, nil
		},
	})
}

// countKernel implements COUNT(col) (non-null) and COUNT(*): for COUNT(*)
// the Aggregate operator passes a single Vector holding one non-nil
// placeholder per row, so the non-null count is the row count. With no
// args at all the kernel returns 0.
func countKernel(ctx *sql.Context, args []sql.Vector) (interface{}, sql.Type, error) {
	if len(args) == 0 {
		return int64(0), sql.Int64, nil
	}
	var n int64
	for _, v := range args[0].Values {
		if v != nil {
			n++
		}
	}
	return n, sql.Int64, nil
}

func countDistinctKernel(ctx *sql.Context, args []sql.Vector) (interface{}, sql.Type, error) {
	seen := map[interface{}]bool{}
	for _, v := range args[0].Values {
		if v != nil {
			seen[v] = true
		}
	}
	return int64(len(seen)), sql.Int64, nil
}

func numericValues(v sql.Vector) ([]float64, bool) {
	out := make([]float64, 0, len(v.Values))
	for _, raw := range v.Values {
		if raw == nil {
			continue
		}
		f, err := cast.ToFloat64E(raw)
		if err != nil {
			return nil, false
		}
		out = append(out, f)
	}
	return out, true
}

func numericFold(init float64, fold func(acc, v float64) float64) sql.AggregateKernel {
	return func(ctx *sql.Context, args []sql.Vector) (interface{}, sql.Type, error) {
		vals, ok := numericValues(args[0])
		if !ok {
			return nil, sql.Float64, nil
		}
		acc := init
		for _, v := range vals {
			acc = fold(acc, v)
		}
		return acc, sql.Float64, nil
	}
}

func boolFold(init bool, fold func(acc, v bool) bool) sql.AggregateKernel {
	return func(ctx *sql.Context, args []sql.Vector) (interface{}, sql.Type, error) {
		acc := init
		any := false
		for _, raw := range args[0].Values {
			if raw == nil {
				continue
			}
			b, err := cast.ToBoolE(raw)
			if err != nil {
				return nil, sql.Boolean, err
			}
			any = true
			acc = fold(acc, b)
		}
		if !any {
			return nil, sql.Boolean, nil
		}
		return acc, sql.Boolean, nil
	}
}

func minMaxKernel(wantMin bool) sql.AggregateKernel {
	return func(ctx *sql.Context, args []sql.Vector) (interface{}, sql.Type, error) {
		vals, ok := numericValues(args[0])
		if ok {
			if len(vals) == 0 {
				return nil, args[0].Type, nil
			}
			best := vals[0]
			for _, v := range vals[1:] {
				if (wantMin && v < best) || (!wantMin && v > best) {
					best = v
				}
			}
			return best, args[0].Type, nil
		}
		// Fall back to string comparison for non-numeric columns.
		var best string
		have := false
		for _, raw := range args[0].Values {
			if raw == nil {
				continue
			}
			s, err := cast.ToStringE(raw)
			if err != nil {
				return nil, args[0].Type, err
			}
			if !have || (wantMin && s < best) || (!wantMin && s > best) {
				best = s
				have = true
			}
		}
		if !have {
			return nil, args[0].Type, nil
		}
		return best, args[0].Type, nil
	}
}

func minMaxPairKernel(ctx *sql.Context, args []sql.Vector) (interface{}, sql.Type, error) {
	lo, _, err := minMaxKernel(true)(ctx, args)
	if err != nil {
		return nil, sql.List, err
	}
	hi, _, err := minMaxKernel(false)(ctx, args)
	if err != nil {
		return nil, sql.List, err
	}
	return []interface{}{lo, hi}, sql.List, nil
}

func meanKernel(ctx *sql.Context, args []sql.Vector) (interface{}, sql.Type, error) {
	vals, ok := numericValues(args[0])
	if !ok || len(vals) == 0 {
		return nil, sql.Float64, nil
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals)), sql.Float64, nil
}

func varianceKernel(ctx *sql.Context, args []sql.Vector) (interface{}, sql.Type, error) {
	vals, ok := numericValues(args[0])
	if !ok || len(vals) == 0 {
		return nil, sql.Float64, nil
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(len(vals))
	var sq float64
	for _, v := range vals {
		d := v - mean
		sq += d * d
	}
	return sq / float64(len(vals)), sql.Float64, nil
}

func quantileKernel(q float64) sql.AggregateKernel {
	return func(ctx *sql.Context, args []sql.Vector) (interface{}, sql.Type, error) {
		vals, ok := numericValues(args[0])
		if !ok || len(vals) == 0 {
			return nil, sql.Float64, nil
		}
		sort.Float64s(vals)
		return percentile(vals, q), sql.Float64, nil
	}
}

// percentile linearly interpolates between the two nearest ranks of a
// pre-sorted slice.
func percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
