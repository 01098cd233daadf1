package engine

import (
	"testing"

	"snexpr/function"
)

func TestCreateEvalDestroy(t *testing.T) {
	vars := NewVarTable()
	n, err := Create("x=2, x*x", vars, nil)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	result, err := Eval(n)
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if result.IsString() || result.Num != 4 {
		t.Fatalf("result = %+v, want number 4", result)
	}
	Destroy(n, vars)
	if vars.Len() != 0 {
		t.Errorf("vars.Len() after Destroy = %d, want 0", vars.Len())
	}
}

func TestCreateWithFunctionRegistry(t *testing.T) {
	cleaned := false
	funcs := NewFuncRegistry(&function.Entry{
		Name:        "once",
		ContextSize: 1,
		Callback: func(_ *function.Entry, _ []float64, ctx []byte) (float64, error) {
			ctx[0]++
			return float64(ctx[0]), nil
		},
		Cleanup: func(_ *function.Entry, _ []byte) {
			cleaned = true
		},
	})
	vars := NewVarTable()
	n, err := Create("once()", vars, funcs)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	result, err := Eval(n)
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if result.Num != 1 {
		t.Fatalf("result = %v, want 1", result.Num)
	}
	Destroy(n, vars)
	if !cleaned {
		t.Error("Destroy did not invoke the registered cleanup callback")
	}
}

func TestCreateSyntaxError(t *testing.T) {
	if _, err := Create("1=2", NewVarTable(), nil); err == nil {
		t.Fatal("Create(\"1=2\") = nil error, want a syntax error")
	}
}
