package intent

import (
	"context"
	"testing"
)

func TestClassifyOrderedMatching(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantIntent     string
		wantConfidence float64
	}{
		{
			name:           "temporal comparison wins first",
			text:           "compare company signups between march and april",
			wantIntent:     QueryDatabase,
			wantConfidence: 0.95,
		},
		{
			name:           "growth vocabulary is temporal",
			text:           "show me the growth of prospects this year",
			wantIntent:     QueryDatabase,
			wantConfidence: 0.95,
		},
		{
			name:           "negated relationship",
			text:           "which companies are without employees?",
			wantIntent:     QueryDatabase,
			wantConfidence: 0.95,
		},
		{
			name:           "aggregation vocabulary",
			text:           "how many registered companies are there?",
			wantIntent:     QueryDatabase,
			wantConfidence: 0.9,
		},
		{
			name:           "average is aggregation",
			text:           "what is the average salary?",
			wantIntent:     QueryDatabase,
			wantConfidence: 0.9,
		},
		{
			name:           "phrase table create company",
			text:           "please create company Acme Ltda",
			wantIntent:     CreateCompany,
			wantConfidence: 0.8,
		},
		{
			name:           "phrase table list employees",
			text:           "list employees of this company",
			wantIntent:     ListEmployees,
			wantConfidence: 0.8,
		},
		{
			name:           "default retrieval fallback",
			text:           "tell me about the benefits landscape",
			wantIntent:     QueryDatabase,
			wantConfidence: 0.6,
		},
	}

	c := NewClassifier(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(context.Background(), tt.text, "user-1")
			if got.Name != tt.wantIntent {
				t.Errorf("intent = %q, want %q", got.Name, tt.wantIntent)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestAnalyticalPhrasesAreHighConfidenceRetrieval(t *testing.T) {
	c := NewClassifier(nil, nil)
	phrases := []string{
		"compare this quarter with the last one",
		"which period had more new companies",
		"companies without employees",
	}
	for _, text := range phrases {
		got := c.Classify(context.Background(), text, "user-1")
		if !IsRetrieval(got.Name) {
			t.Errorf("%q: intent = %q, want retrieval", text, got.Name)
		}
		if got.Confidence < 0.9 {
			t.Errorf("%q: confidence = %v, want >= 0.9", text, got.Confidence)
		}
	}
}

func TestExtractParams(t *testing.T) {
	tests := []struct {
		name string
		text string
		key  string
		want string
	}{
		{
			name: "punctuated cnpj normalized to digits",
			text: "find the company with cnpj 12.345.678/0001-90",
			key:  "cnpj",
			want: "12345678000190",
		},
		{
			name: "bare cnpj digits",
			text: "company 12345678000190 please",
			key:  "cnpj",
			want: "12345678000190",
		},
		{
			name: "cpf extraction",
			text: "employee with cpf 123.456.789-09",
			key:  "cpf",
			want: "12345678909",
		},
		{
			name: "id marker",
			text: "open the record id: 42abc",
			key:  "id",
			want: "42abc",
		},
		{
			name: "email extraction",
			text: "send it to maria.souza@example.com.br today",
			key:  "email",
			want: "maria.souza@example.com.br",
		},
		{
			name: "name marker",
			text: "create company name: Padaria Central, sector bakery",
			key:  "name",
			want: "Padaria Central",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := ExtractParams(tt.text)
			got, ok := params[tt.key]
			if !ok {
				t.Fatalf("param %q not extracted from %q", tt.key, tt.text)
			}
			if got != tt.want {
				t.Errorf("param %q = %v, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestCNPJDigitsDoNotDoubleAsCPF(t *testing.T) {
	params := ExtractParams("check 12.345.678/0001-90 for me")
	if _, ok := params["cpf"]; ok {
		t.Errorf("cpf extracted from a cnpj span: %v", params["cpf"])
	}
}

func TestExtractParamsNeverFails(t *testing.T) {
	for _, text := range []string{"", "   ", "just words here", "????"} {
		params := ExtractParams(text)
		if params == nil {
			t.Fatalf("nil params for %q", text)
		}
	}
}
