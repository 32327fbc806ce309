package services

import "testing"

func TestKeywordIntent(t *testing.T) {
	cases := []struct {
		name       string
		transcript string
		want       string
		wantConf   float64
	}{
		{
			name:       "hindi_learn",
			transcript: "मुझे सीखना है",
			want:       IntentLearn,
			wantConf:   0.8,
		},
		{
			name:       "english_job",
			transcript: "I need a job near my village",
			want:       IntentEarn,
			wantConf:   0.8,
		},
		{
			name:       "hindi_work",
			transcript: "मुझे काम चाहिए",
			want:       IntentEarn,
			wantConf:   0.8,
		},
		{
			name:       "rights_question",
			transcript: "what are my rights at the workplace",
			want:       IntentLegal,
			wantConf:   0.8,
		},
		{
			name:       "teach_skill",
			transcript: "मैं सिलाई सिखाना चाहती हूँ",
			want:       IntentSkillSwap,
			wantConf:   0.8,
		},
		{
			name:       "no_match",
			transcript: "नमस्ते",
			want:       IntentUnknown,
			wantConf:   0.5,
		},
		{
			name:       "learn_beats_earn",
			transcript: "मुझे काम के लिए कोर्स सीखना है",
			want:       IntentLearn,
			wantConf:   0.8,
		},
		{
			name:       "earn_beats_legal",
			transcript: "job related to law",
			want:       IntentEarn,
			wantConf:   0.8,
		},
		{
			name:       "legal_beats_skill",
			transcript: "legal talent question",
			want:       IntentLegal,
			wantConf:   0.8,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := keywordIntent(tc.transcript)
			if got.Intent != tc.want {
				t.Fatalf("keywordIntent(%q).Intent=%q, want %q", tc.transcript, got.Intent, tc.want)
			}
			if got.Confidence != tc.wantConf {
				t.Fatalf("keywordIntent(%q).Confidence=%v, want %v", tc.transcript, got.Confidence, tc.wantConf)
			}
			if got.Classifier != ClassifierFallback {
				t.Fatalf("keywordIntent(%q).Classifier=%q, want %q", tc.transcript, got.Classifier, ClassifierFallback)
			}
			if got.Entities == nil {
				t.Fatalf("keywordIntent(%q).Entities is nil", tc.transcript)
			}
		})
	}
}

func TestParseIntentJSON(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "plain_json",
			raw:  `{"intent": "learn", "confidence": 0.9, "entities": {}}`,
			want: IntentLearn,
		},
		{
			name: "fenced_json",
			raw:  "```json\n{\"intent\": \"earn\", \"confidence\": 0.85, \"entities\": {}}\n```",
			want: IntentEarn,
		},
		{
			name: "prose_wrapped",
			raw:  `Here is the classification: {"intent": "legal", "confidence": 0.7, "entities": {}} hope that helps`,
			want: IntentLegal,
		},
		{
			name:    "no_json",
			raw:     "I think the user wants to learn",
			wantErr: true,
		},
		{
			name:    "invalid_label",
			raw:     `{"intent": "shopping", "confidence": 0.9, "entities": {}}`,
			wantErr: true,
		},
		{
			name:    "broken_json",
			raw:     `{"intent": "learn", "confidence": }`,
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseIntentJSON(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("parseIntentJSON(%q) expected error, got %+v", tc.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseIntentJSON(%q) error: %v", tc.raw, err)
			}
			if got.Intent != tc.want {
				t.Fatalf("parseIntentJSON(%q).Intent=%q, want %q", tc.raw, got.Intent, tc.want)
			}
			if got.Entities == nil {
				t.Fatalf("parseIntentJSON(%q).Entities is nil", tc.raw)
			}
		})
	}
}
