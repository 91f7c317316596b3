package bot

import "testing"

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		text string
		want Intent
	}{
		{"/start", IntentStart},
		{"/start@pedbot", IntentStart},
		{"/ayuda", IntentHelp},
		{"ayuda", IntentHelp},
		{"/help", IntentHelp},
		{"/info", IntentInfo},
		{"cuéntame del plan estatal", IntentInfo},
		{"/reset", IntentReset},
		{"/refrescar", IntentRefresh},
		{"/id", IntentID},
		{"municipio Pachuca", IntentMunicipio},
		{"  municipio: Tulancingo", IntentMunicipio},
		{"MUNICIPIO Tizayuca", IntentMunicipio},
		{"mi municipio favorito", IntentFallback},
		{"hola", IntentGreeting},
		{"buenos días", IntentGreeting},
		{"qué tal todo", IntentFallback},
		{"", IntentFallback},
	}
	for _, tt := range tests {
		if got := DetectIntent(tt.text); got != tt.want {
			t.Errorf("DetectIntent(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestExtractMunicipio(t *testing.T) {
	tests := []struct {
		text, want string
	}{
		{"municipio Pachuca", "Pachuca"},
		{"municipio: Tulancingo de Bravo", "Tulancingo de Bravo"},
		{"Municipio   Tizayuca ", "Tizayuca"},
		{"Pachuca de Soto", "Pachuca de Soto"},
		{"  Zempoala  ", "Zempoala"},
	}
	for _, tt := range tests {
		if got := ExtractMunicipio(tt.text); got != tt.want {
			t.Errorf("ExtractMunicipio(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
