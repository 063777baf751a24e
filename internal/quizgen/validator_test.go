package quizgen

import "testing"

func TestValidators(t *testing.T) {
	input := GenerateInput{OptionCount: 4}
	good := Question{Prompt: "Q", Options: []string{"a", "b", "c", "d"}, CorrectOption: "b"}

	tests := []struct {
		name      string
		validator Validator
		q         Question
		wantFail  bool
	}{
		{"content ok", &ContentValidator{}, good, false},
		{"content blank prompt", &ContentValidator{}, Question{Prompt: " ", Options: good.Options}, true},
		{"content blank option", &ContentValidator{}, Question{Prompt: "Q", Options: []string{"a", "", "c", "d"}}, true},
		{"content duplicate option", &ContentValidator{}, Question{Prompt: "Q", Options: []string{"a", "b", "a", "d"}}, true},
		{"count ok", &OptionCountValidator{}, good, false},
		{"count short", &OptionCountValidator{}, Question{Options: []string{"a", "b"}}, true},
		{"membership ok", &AnswerMembershipValidator{}, good, false},
		{"membership case differs", &AnswerMembershipValidator{}, Question{Options: good.Options, CorrectOption: "B"}, true},
		{"membership empty", &AnswerMembershipValidator{}, Question{Options: good.Options}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := tt.validator.Validate(&tt.q, input)
			if (verr != nil) != tt.wantFail {
				t.Fatalf("Validate() = %v, wantFail %v", verr, tt.wantFail)
			}
			if verr != nil && verr.Validator != tt.validator.Name() {
				t.Errorf("validator name = %q, want %q", verr.Validator, tt.validator.Name())
			}
		})
	}
}

func TestStructuralValidator(t *testing.T) {
	v := &StructuralValidator{}
	ok := map[string]any{"question": "Q", "options": []any{"a", "b"}, "correctAnswer": "a"}
	if verr := v.ValidateRaw(ok); verr != nil {
		t.Fatalf("unexpected failure: %v", verr)
	}
	extra := map[string]any{"question": "Q", "options": []any{"a"}, "correctAnswer": "a", "difficulty": "hard"}
	if verr := v.ValidateRaw(extra); verr != nil {
		t.Fatalf("extra fields should be tolerated: %v", verr)
	}
	for _, bad := range []any{
		"just a string",
		map[string]any{"question": "Q"},
		map[string]any{"question": 1, "options": []any{"a"}, "correctAnswer": "a"},
		map[string]any{"question": "Q", "options": []any{"a", 2}, "correctAnswer": "a"},
	} {
		if verr := v.ValidateRaw(bad); verr == nil {
			t.Errorf("expected failure for %v", bad)
		}
	}
}

func TestQuestion_IsCorrect(t *testing.T) {
	q := Question{Options: []string{"a", "b"}, CorrectOption: "b"}
	if !q.IsCorrect("b") || q.IsCorrect("a") || q.IsCorrect("") {
		t.Fatal("IsCorrect should be an exact match on a non-empty answer")
	}
}

func TestDecodeQuestion(t *testing.T) {
	q, err := decodeQuestion(map[string]any{"question": "Q", "options": []any{"a", "b"}, "correctAnswer": "b", "explanation": "why"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Prompt != "Q" || q.CorrectOption != "b" || len(q.Options) != 2 || q.Explanation != "why" {
		t.Errorf("decoded = %+v", q)
	}

	if _, err := decodeQuestion(map[string]any{"question": make(chan int)}); err == nil {
		t.Error("expected an error for an item that cannot be encoded")
	}
	if _, err := decodeQuestion(map[string]any{"options": []any{1, 2}}); err == nil {
		t.Error("expected an error for non-string options")
	}
}

func TestItemErrorFromDecodeFailure(t *testing.T) {
	item := map[string]any{"question": make(chan int)}
	_, err := decodeQuestion(item)
	serr := itemError(2, item, &ValidationError{Validator: "structural", Message: err.Error()}, DefaultConfig())
	if serr.Index != 2 {
		t.Errorf("Index = %d, want 2", serr.Index)
	}
}
