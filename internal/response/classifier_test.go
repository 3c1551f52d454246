package response

import "testing"

func TestIsUnsubscribe(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"pare uppercase", "PARE de enviar", true},
		{"sair embedded", "quero sair da lista", true},
		{"descadastrar", "Favor descadastrar meu numero", true},
		{"english stop", "stop", true},
		{"unsubscribe", "please unsubscribe me", true},
		{"cancelar", "pode cancelar", true},
		{"plain thanks", "obrigado pela mensagem", false},
		{"interested reply", "quero saber mais", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUnsubscribe(tt.text); got != tt.want {
				t.Errorf("IsUnsubscribe(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

// The bare "não"/"nao" keywords match any negative reply, not only
// opt-out requests. That is an accepted limitation of the keyword
// heuristic, pinned here so a future "fix" is a conscious decision.
func TestIsUnsubscribeNaoFalsePositive(t *testing.T) {
	if !IsUnsubscribe("não recebi o boleto") {
		t.Error(`expected bare "não" to match even in a non-opt-out reply`)
	}
	if !IsUnsubscribe("nao entendi a mensagem") {
		t.Error(`expected bare "nao" to match even in a non-opt-out reply`)
	}
}

func TestIsNoInterest(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"full phrase", "Não tenho interesse, obrigado", true},
		{"accent free phrase", "nao tenho interesse", true},
		{"sem interesse", "Sem interesse no momento", true},
		{"dismissive nao comma", "Não, obrigado", true},
		{"accent free nao comma", "nao, valeu", true},
		{"bare nao without comma", "não recebi", false},
		{"interested", "tenho interesse sim", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNoInterest(tt.text); got != tt.want {
				t.Errorf("IsNoInterest(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
