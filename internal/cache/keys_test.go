package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "questionset",
			objectType:  "set",
			identifier:  "s1",
			expectedKey: "quizset:questionset:set:s1",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "questionset",
			objectType:  "set",
			identifier:  "s1",
			paramsKey:   []string{},
			expectedKey: "quizset:questionset:set:s1",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "questionset",
			objectType:  "view",
			identifier:  "s1",
			paramsKey:   []string{"reveal", "v2"},
			expectedKey: "quizset:questionset:view:s1:reveal_v2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...); got != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %q, want %q", got, tt.expectedKey)
			}
		})
	}
}

func TestQuestionSetKey(t *testing.T) {
	if got := QuestionSetKey("01HZX"); got != "quizset:questionset:set:01HZX" {
		t.Errorf("QuestionSetKey() = %q", got)
	}
}
