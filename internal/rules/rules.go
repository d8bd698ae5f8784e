package rules

// TransactionType classifies where a transaction lands in the books.
type TransactionType string

const (
	Receitas      TransactionType = "receitas"
	Despesas      TransactionType = "despesas"
	Investimentos TransactionType = "investimentos"
)

func ValidType(t TransactionType) bool {
	switch t {
	case Receitas, Despesas, Investimentos:
		return true
	}
	return false
}

// Rule maps free-text transaction descriptions to a category by
// case-insensitive keyword substring match.
type Rule struct {
	ID       string          `json:"id" db:"id"`
	Keywords []string        `json:"keywords"`
	Category string          `json:"category" db:"category"`
	Type     TransactionType `json:"type" db:"transaction_type"`
	Builtin  bool            `json:"builtin" db:"-"`
}

// Builtin rules are evaluated in declaration order, before any user rules.
// Keywords are lowercase; matching lowercases the description.
var builtinRules = []Rule{
	{ID: "sys-streaming", Keywords: []string{"spotify", "deezer", "apple music", "youtube music", "streaming"}, Category: "royalties_streaming", Type: Receitas, Builtin: true},
	{ID: "sys-distribuicao", Keywords: []string{"distrokid", "onerpm", "cd baby", "distribuicao", "distribuidora"}, Category: "distribuicao", Type: Receitas, Builtin: true},
	{ID: "sys-show", Keywords: []string{"cache", "cachê", "show", "apresentacao", "evento"}, Category: "shows_eventos", Type: Receitas, Builtin: true},
	{ID: "sys-direitos", Keywords: []string{"ecad", "abramus", "ubc", "direitos autorais"}, Category: "direitos_autorais", Type: Receitas, Builtin: true},
	{ID: "sys-licenciamento", Keywords: []string{"licenciamento", "sincronizacao", "sync"}, Category: "licenciamento", Type: Receitas, Builtin: true},
	{ID: "sys-pix-recebido", Keywords: []string{"pix recebido", "ted recebida", "deposito"}, Category: "outras_receitas", Type: Receitas, Builtin: true},
	{ID: "sys-estudio", Keywords: []string{"estudio", "estúdio", "gravacao", "mixagem", "masterizacao"}, Category: "producao_musical", Type: Despesas, Builtin: true},
	{ID: "sys-marketing", Keywords: []string{"trafego pago", "meta ads", "google ads", "impulsionamento", "marketing", "assessoria de imprensa"}, Category: "marketing", Type: Despesas, Builtin: true},
	{ID: "sys-clipe", Keywords: []string{"videoclipe", "clipe", "filmagem", "edicao de video"}, Category: "audiovisual", Type: Despesas, Builtin: true},
	{ID: "sys-aluguel", Keywords: []string{"aluguel", "condominio", "locacao"}, Category: "estrutura", Type: Despesas, Builtin: true},
	{ID: "sys-energia", Keywords: []string{"energia", "enel", "cemig", "light", "conta de luz"}, Category: "estrutura", Type: Despesas, Builtin: true},
	{ID: "sys-internet", Keywords: []string{"internet", "vivo fibra", "claro", "tim", "telefonia"}, Category: "estrutura", Type: Despesas, Builtin: true},
	{ID: "sys-transporte", Keywords: []string{"uber", "99", "combustivel", "passagem", "hospedagem", "diaria"}, Category: "logistica", Type: Despesas, Builtin: true},
	{ID: "sys-imposto", Keywords: []string{"darf", "das ", "imposto", "tributo", "inss", "iss"}, Category: "impostos", Type: Despesas, Builtin: true},
	{ID: "sys-tarifa", Keywords: []string{"tarifa", "anuidade", "taxa bancaria", "iof"}, Category: "tarifas_bancarias", Type: Despesas, Builtin: true},
	{ID: "sys-salario", Keywords: []string{"salario", "folha de pagamento", "pro-labore", "prolabore"}, Category: "pessoal", Type: Despesas, Builtin: true},
	{ID: "sys-juridico", Keywords: []string{"advogado", "juridico", "cartorio", "registro de marca"}, Category: "juridico", Type: Despesas, Builtin: true},
	{ID: "sys-software", Keywords: []string{"adobe", "canva", "dropbox", "notion", "assinatura"}, Category: "software", Type: Despesas, Builtin: true},
	{ID: "sys-equipamento", Keywords: []string{"microfone", "interface de audio", "instrumento", "equipamento", "mesa de som"}, Category: "equipamentos", Type: Investimentos, Builtin: true},
	{ID: "sys-aplicacao", Keywords: []string{"aplicacao", "cdb", "tesouro direto", "resgate"}, Category: "aplicacoes", Type: Investimentos, Builtin: true},
	{ID: "sys-catalogo", Keywords: []string{"aquisicao de catalogo", "compra de fonograma", "masters"}, Category: "catalogo", Type: Investimentos, Builtin: true},
}

// BuiltinRules returns a copy of the system rule table.
func BuiltinRules() []Rule {
	out := make([]Rule, len(builtinRules))
	copy(out, builtinRules)
	return out
}
