package excs

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestCatchByCode(t *testing.T) {
	thread, _ := newTestThread(t)
	for _, code := range []Code{1, -1, 5, 42, math.MaxInt32, math.MinInt32} {
		mark := 0
		exit := thread.Try(func() {
			thread.Raise(code)
			t.Fatal("should not return")
		}).Catch(code, func(caught Code) {
			if caught != code {
				t.Fatalf("got %v", caught)
			}
			mark = 1
		}).End()
		if mark != 1 {
			t.Fatalf("%d: not caught", code)
		}
		if exit != ExitNone {
			t.Fatalf("got %v", exit)
		}
		if thread.Depth() != 0 {
			t.Fatalf("got %v", thread.Depth())
		}
	}
}

func TestNoRaise(t *testing.T) {
	thread, _ := newTestThread(t)
	var steps []string
	thread.Try(func() {
		steps = append(steps, "body")
		if thread.Depth() != 1 {
			t.Fatalf("got %v", thread.Depth())
		}
	}).Catch(1, func(Code) {
		steps = append(steps, "catch")
	}).CatchAll(func(Code) {
		steps = append(steps, "catch all")
	}).Finally(func() {
		steps = append(steps, "finally")
	}).End()
	if !slices.Equal(steps, []string{"body", "finally"}) {
		t.Fatalf("got %v", steps)
	}
}

func TestCatchOrder(t *testing.T) {
	thread, _ := newTestThread(t)
	var evaluated []string
	var handled []string
	thread.Try(func() {
		thread.Raise(12)
	}).CatchIf(func(code Code) bool {
		evaluated = append(evaluated, "odd")
		return code%2 == 1
	}, func(Code) {
		handled = append(handled, "odd")
	}).CatchIf(func(code Code) bool {
		evaluated = append(evaluated, "even")
		return code%2 == 0
	}, func(Code) {
		handled = append(handled, "even")
	}).CatchIf(func(code Code) bool {
		evaluated = append(evaluated, "range")
		return code >= 10 && code < 20
	}, func(Code) {
		handled = append(handled, "range")
	}).Catch(12, func(Code) {
		handled = append(handled, "exact")
	}).CatchAll(func(Code) {
		handled = append(handled, "all")
	}).End()

	if !slices.Equal(evaluated, []string{"odd", "even"}) {
		t.Fatalf("got %v", evaluated)
	}
	if !slices.Equal(handled, []string{"even"}) {
		t.Fatalf("got %v", handled)
	}
}

func TestCatchAll(t *testing.T) {
	thread, _ := newTestThread(t)
	var caught Code
	thread.Try(func() {
		thread.Raise(3)
	}).Catch(4, func(Code) {
		t.Fatal("should not match")
	}).CatchAll(func(code Code) {
		caught = code
	}).End()
	if caught != 3 {
		t.Fatalf("got %v", caught)
	}
}

func TestNilHandler(t *testing.T) {
	thread, _ := newTestThread(t)
	thread.Try(func() {
		thread.Raise(3)
	}).Catch(3, nil).End()
	if thread.Depth() != 0 {
		t.Fatal()
	}
}

func TestCodeAccessor(t *testing.T) {
	thread, _ := newTestThread(t)
	if thread.Code() != NoCode {
		t.Fatal()
	}
	var inPredicate, inHandler Code
	thread.Try(func() {
		if thread.Code() != NoCode {
			t.Fatal()
		}
		thread.Raise(0x42)
	}).CatchIf(func(Code) bool {
		inPredicate = thread.Code()
		return thread.Code()&0x40 != 0
	}, func(Code) {
		inHandler = thread.Code()
	}).End()
	if inPredicate != 0x42 {
		t.Fatalf("got %v", inPredicate)
	}
	if inHandler != NoCode {
		t.Fatalf("got %v", inHandler)
	}
}

func TestFinallyOnce(t *testing.T) {
	thread, _ := newTestThread(t)

	// completed
	n := 0
	thread.Try(func() {
	}).Finally(func() {
		n++
	}).End()
	if n != 1 {
		t.Fatalf("got %v", n)
	}

	// handled
	n = 0
	thread.Try(func() {
		thread.Raise(1)
	}).Catch(1, func(Code) {
	}).Finally(func() {
		n++
	}).End()
	if n != 1 {
		t.Fatalf("got %v", n)
	}

	// escalating
	n = 0
	caught := false
	thread.Try(func() {
		thread.Try(func() {
			thread.Raise(1)
		}).Catch(2, func(Code) {
			t.Fatal("should not match")
		}).Finally(func() {
			n++
		}).End()
		t.Fatal("should not continue")
	}).Catch(1, func(Code) {
		caught = true
	}).End()
	if n != 1 {
		t.Fatalf("got %v", n)
	}
	if !caught {
		t.Fatal()
	}

	// raise inside finally
	n = 0
	var outer Code
	thread.Try(func() {
		thread.Try(func() {
		}).Catch(9, func(Code) {
			t.Fatal("should not catch raise from finally")
		}).Finally(func() {
			n++
			thread.Raise(9)
		}).End()
	}).CatchAll(func(code Code) {
		outer = code
	}).End()
	if n != 1 {
		t.Fatalf("got %v", n)
	}
	if outer != 9 {
		t.Fatalf("got %v", outer)
	}
}

func TestPropagation(t *testing.T) {
	thread, _ := newTestThread(t)
	y := 0
	thread.Try(func() {
		thread.Try(func() {
			thread.Raise(5)
		}).Catch(6, func(Code) {
			t.Fatal("should not match")
		}).End()
	}).Catch(5, func(Code) {
		y = 2
	}).End()
	if y != 2 {
		t.Fatalf("got %v", y)
	}
	if thread.Depth() != 0 {
		t.Fatal()
	}
}

func TestPropagationAcrossCalls(t *testing.T) {
	thread, _ := newTestThread(t)
	var level3, level2 func()
	level3 = func() {
		thread.Raise(8)
	}
	level2 = func() {
		thread.Try(func() {
			level3()
		}).Catch(1, nil).Finally(func() {}).End()
	}
	var depths []int
	thread.Try(func() {
		thread.Try(func() {
			level2()
		}).CatchIf(func(code Code) bool {
			depths = append(depths, thread.Depth())
			return code > 100
		}, nil).End()
	}).CatchIf(func(code Code) bool {
		depths = append(depths, thread.Depth())
		return code == 8
	}, nil).End()
	if !slices.Equal(depths, []int{2, 1}) {
		t.Fatalf("got %v", depths)
	}
}

func TestRethrowFromCatch(t *testing.T) {
	thread, _ := newTestThread(t)
	sibling := false
	outer := false
	finally := 0
	thread.Try(func() {
		thread.Try(func() {
			thread.Raise(5)
		}).Catch(5, func(code Code) {
			thread.Raise(code)
		}).Catch(5, func(Code) {
			sibling = true
		}).CatchAll(func(Code) {
			sibling = true
		}).Finally(func() {
			finally++
		}).End()
	}).Catch(5, func(Code) {
		outer = true
	}).End()
	if sibling {
		t.Fatal("rethrow caught by sibling clause")
	}
	if !outer {
		t.Fatal("rethrow not propagated")
	}
	if finally != 1 {
		t.Fatalf("got %v", finally)
	}
}

func TestRaiseNewCodeFromCatch(t *testing.T) {
	thread, _ := newTestThread(t)
	var got Code
	thread.Try(func() {
		thread.Try(func() {
			thread.Raise(1)
		}).Catch(1, func(Code) {
			// nested block inside the handler that does not match
			thread.Try(func() {
				thread.Raise(2)
			}).Catch(3, nil).End()
		}).Catch(2, func(Code) {
			t.Fatal("should not match")
		}).End()
	}).CatchAll(func(code Code) {
		got = code
	}).End()
	if got != 2 {
		t.Fatalf("got %v", got)
	}
}

func TestRaiseFromPredicate(t *testing.T) {
	thread, _ := newTestThread(t)
	var got Code
	thread.Try(func() {
		thread.Try(func() {
			thread.Raise(1)
		}).CatchIf(func(Code) bool {
			thread.Raise(4)
			return true
		}, func(Code) {
			t.Fatal("should not run")
		}).End()
	}).CatchAll(func(code Code) {
		got = code
	}).End()
	if got != 4 {
		t.Fatalf("got %v", got)
	}
}

func TestZeroCode(t *testing.T) {
	thread, _ := newTestThread(t)

	func() {
		defer func() {
			p := recover()
			err, ok := p.(error)
			if !ok || !errors.Is(err, ErrZeroCode) {
				t.Fatalf("got %v", p)
			}
		}()
		thread.Try(func() {
			thread.Raise(NoCode)
		}).CatchAll(func(Code) {
			t.Fatal("zero code caught")
		}).End()
	}()
	if thread.Depth() != 0 {
		t.Fatalf("got %v", thread.Depth())
	}

	func() {
		defer func() {
			p := recover()
			if p != ErrZeroCode {
				t.Fatalf("got %v", p)
			}
		}()
		thread.Try(func() {}).Catch(0, nil)
	}()
}

func TestForeignPanic(t *testing.T) {
	thread, _ := newTestThread(t)
	finally := false
	func() {
		defer func() {
			if p := recover(); p != "foo" {
				t.Fatalf("got %v", p)
			}
		}()
		thread.Try(func() {
			thread.Try(func() {
				panic("foo")
			}).CatchAll(func(Code) {
				t.Fatal("should not catch")
			}).End()
		}).Finally(func() {
			finally = true
		}).End()
	}()
	if finally {
		t.Fatal("finally should not run for foreign panic")
	}
	if thread.Depth() != 0 {
		t.Fatalf("got %v", thread.Depth())
	}
}

func TestRaiseFromDeferInBody(t *testing.T) {
	thread, _ := newTestThread(t)
	var caught []Code
	thread.Try(func() {
		defer thread.Raise(2)
		thread.Raise(1)
	}).Catch(2, func(code Code) {
		caught = append(caught, code)
	}).Catch(1, func(code Code) {
		caught = append(caught, code)
	}).End()
	if !slices.Equal(caught, []Code{2}) {
		t.Fatalf("got %v", caught)
	}
	if thread.Depth() != 0 {
		t.Fatalf("got %v", thread.Depth())
	}
}

func TestRaiseFromDeferBetweenFrames(t *testing.T) {
	thread, _ := newTestThread(t)
	open := func() {
		defer func() {
			thread.Raise(7)
		}()
		thread.Raise(3)
	}
	var caught Code
	finally := 0
	thread.Try(func() {
		open()
	}).Catch(7, func(code Code) {
		caught = code
	}).Finally(func() {
		finally++
	}).End()
	if caught != 7 {
		t.Fatalf("got %v", caught)
	}
	if finally != 1 {
		t.Fatalf("got %v", finally)
	}
}

func TestRaiseFromDeferStillEscalatesFromHandler(t *testing.T) {
	thread, _ := newTestThread(t)
	var outer Code
	thread.Try(func() {
		thread.Try(func() {
			defer thread.Raise(2)
			thread.Raise(1)
		}).Catch(2, func(Code) {
			thread.Raise(9)
		}).Catch(9, func(Code) {
			t.Fatal("raise from handler caught at same level")
		}).End()
	}).Catch(9, func(code Code) {
		outer = code
	}).End()
	if outer != 9 {
		t.Fatalf("got %v", outer)
	}
}
