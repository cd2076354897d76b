// Package auth implementa a checagem de senha administrativa compartilhada.
// Não há usuários, sessões nem papéis: um único segredo, injetado via
// configuração, é comparado por igualdade a cada operação de escrita.
package auth

// Gate avalia a senha submetida contra o segredo configurado.
type Gate struct {
	secret string
}

func NewGate(secret string) *Gate {
	return &Gate{secret: secret}
}

func (g *Gate) Check(password string) bool {
	return password == g.secret
}
