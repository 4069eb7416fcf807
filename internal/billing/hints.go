package billing

// ProviderHint maps a known billing provider to its category and the
// keywords that identify it in extracted text.
type ProviderHint struct {
	ProviderID   string
	ProviderName string
	Category     Category
	Keywords     []string
}

// ProviderHints is the static hint table. Order matters: keyword matching
// scans hints in table order and the first match wins, so specific
// providers come before the generic per-category hints at the end.
var ProviderHints = []ProviderHint{
	{"personal", "Personal (Fibertel)", CategoryInternet, []string{"personal", "fibertel", "telecom argentina", "cablevision"}},
	{"flow", "Flow (Cablevisión Telecom)", CategoryInternet, []string{"flow", "fibertel flow", "flow empresas"}},
	{"telecentro", "Telecentro", CategoryInternet, []string{"telecentro"}},
	{"claro", "Claro", CategoryInternet, []string{"claro"}},
	{"movistar", "Movistar", CategoryInternet, []string{"movistar"}},
	{"movistar_tv", "Movistar TV", CategoryInternet, []string{"movistar tv", "movistar play"}},
	{"iplan", "iPlan", CategoryInternet, []string{"iplan", "iplan fiber"}},
	{"fibercorp", "Fibercorp", CategoryInternet, []string{"fibercorp", "telecom empresas"}},
	{"telecom", "Telecom Argentina", CategoryInternet, []string{"telecom argentina"}},
	{"edesur", "Edesur", CategoryElectricity, []string{"edesur"}},
	{"edenor", "Edenor", CategoryElectricity, []string{"edenor"}},
	{"epec", "EPEC (Córdoba)", CategoryElectricity, []string{"epec"}},
	{"edea", "EDEA", CategoryElectricity, []string{"edea"}},
	{"edesa", "EDESA", CategoryElectricity, []string{"edesa"}},
	{"epe_santafe", "EPE Santa Fe", CategoryElectricity, []string{"epe", "energia santafe"}},
	{"aysa", "AySA", CategoryWater, []string{"aysa, agua y saneamiento"}},
	{"aguas_cordobesas", "Aguas Cordobesas", CategoryWater, []string{"aguas cordobesas"}},
	{"metrogas", "Metrogas", CategoryGas, []string{"metrogas"}},
	{"naturgy", "Naturgy", CategoryGas, []string{"naturgy", "gas natural ban", "gasban"}},
	{"camuzzi", "Camuzzi Gas", CategoryGas, []string{"camuzzi"}},
	{"expensas_genericas", "Expensas / Consorcio", CategoryHoa, []string{"expensa", "consorcio", "administracion"}},
	{"visa", "Visa", CategoryCreditCard, []string{"visa"}},
	{"mastercard", "Mastercard", CategoryCreditCard, []string{"mastercard"}},
	{"amex", "American Express", CategoryCreditCard, []string{"amex", "american express"}},
	{"naranja", "Tarjeta Naranja X", CategoryCreditCard, []string{"naranja", "tarjeta naranja", "naranja x"}},
	{"cabal", "Cabal", CategoryCreditCard, []string{"cabal"}},
	{"maestro", "Maestro", CategoryCreditCard, []string{"maestro"}},
	{"coto", "Coto", CategoryOther, []string{"coto"}},
	{"mercadopago", "Mercado Pago", CategoryOther, []string{"mercado pago", "mp"}},
	{"uala", "Ualá", CategoryOther, []string{"uala"}},
	{"osde", "OSDE", CategoryHealth, []string{"osde"}},
	{"swiss_medical", "Swiss Medical", CategoryHealth, []string{"swiss medical", "swiss", "smg"}},
	{"galeno", "Galeno", CategoryHealth, []string{"galeno"}},
	{"medicus", "Medicus", CategoryHealth, []string{"medicus"}},
	{"omint", "OMINT", CategoryHealth, []string{"omint"}},
	{"sancor_salud", "Sancor Salud", CategoryHealth, []string{"sancor salud", "sancor"}},
	{"federada_salud", "Federada Salud", CategoryHealth, []string{"federada salud", "federada"}},
	{"accord_salud", "Accord Salud", CategoryHealth, []string{"accord salud", "accord"}},
	{"premedic", "Premedic", CategoryHealth, []string{"premedic"}},
	{"hominis", "Hominis", CategoryHealth, []string{"hominis"}},
	{"generic_health", "Health / Prepaga", CategoryHealth, []string{"salud", "medicina", "prepaga", "obra social", "servicio de salud"}},
	{"generic_electricity", "Electricity Service", CategoryElectricity, []string{"luz", "energia", "electricidad", "electric"}},
	{"generic_water", "Water Service", CategoryWater, []string{"agua", "aguas", "saneamiento"}},
	{"generic_gas", "Gas Service", CategoryGas, []string{"gas", "gas natural"}},
	{"generic_internet", "Internet/Mobile Service", CategoryInternet, []string{"internet", "wifi", "fibra", "banda ancha", "movil", "celular"}},
	{"generic_hoa", "HOA / Expensas", CategoryHoa, []string{"expensa", "consorcio", "administracion", "edificio"}},
	{"generic_credit_card", "Credit Card", CategoryCreditCard, []string{"tarjeta", "credito", "resumen", "banco"}},
}

// hintIndex is the immutable lookup structure built once at process start:
// a providerId map for the exact lookup and the ordered hint list with
// pre-normalized keywords for the substring scan.
type hintIndexData struct {
	byID    map[string]*ProviderHint
	ordered []hintKeywords
}

type hintKeywords struct {
	hint     *ProviderHint
	keywords []string
}

var hintIndex = buildHintIndex()

func buildHintIndex() hintIndexData {
	index := hintIndexData{
		byID:    make(map[string]*ProviderHint, len(ProviderHints)),
		ordered: make([]hintKeywords, 0, len(ProviderHints)),
	}

	for i := range ProviderHints {
		hint := &ProviderHints[i]
		index.byID[hint.ProviderID] = hint

		keywords := make([]string, 0, len(hint.Keywords))
		for _, keyword := range hint.Keywords {
			if normalized := normalizeSearchValue(keyword); normalized != "" {
				keywords = append(keywords, normalized)
			}
		}
		index.ordered = append(index.ordered, hintKeywords{hint: hint, keywords: keywords})
	}

	return index
}
