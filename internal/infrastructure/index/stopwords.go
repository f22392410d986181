package index

// Spanish legal stop words; tokens of length <= 2 are dropped before this
// list applies, so short function words are not repeated here.
var spanishStopWords = map[string]struct{}{
	"que": {}, "los": {}, "las": {}, "del": {}, "por": {}, "con": {},
	"para": {}, "una": {}, "uno": {}, "unos": {}, "unas": {}, "este": {},
	"esta": {}, "estos": {}, "estas": {}, "ese": {}, "esa": {}, "esos": {},
	"esas": {}, "son": {}, "ser": {}, "como": {}, "más": {}, "mas": {},
	"pero": {}, "sus": {}, "fue": {}, "han": {}, "hay": {}, "porque": {},
	"entre": {}, "cuando": {}, "muy": {}, "sin": {}, "sobre": {},
	"también": {}, "hasta": {}, "donde": {}, "quien": {}, "desde": {},
	"todo": {}, "toda": {}, "todos": {}, "todas": {}, "nos": {},
	"durante": {}, "les": {}, "contra": {}, "otros": {}, "otro": {},
	"otra": {}, "otras": {}, "ante": {}, "ellos": {}, "ellas": {},
	"esto": {}, "eso": {}, "cual": {}, "cuales": {}, "según": {},
	"sea": {}, "será": {}, "serán": {}, "está": {}, "están": {},
	"dicho": {}, "dicha": {}, "mismo": {}, "misma": {}, "mediante": {},
	"cada": {}, "así": {}, "tal": {}, "tales": {},
}

func isStopWord(token string) bool {
	_, ok := spanishStopWords[token]
	return ok
}
