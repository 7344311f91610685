package grammar

// Tense identifies a Turkish verb tense or mood. Values are the Turkish
// names used in file names and persisted JSON.
type Tense string

const (
	SimdikiZaman       Tense = "şimdiki_zaman"        // present continuous (yapıyorum)
	GecmisZaman        Tense = "geçmiş_zaman"         // simple past (yaptım)
	GelecekZaman       Tense = "gelecek_zaman"        // simple future (yapacağım)
	Yaracagim          Tense = "yaracağım"            // definite future
	GenisZaman         Tense = "geniş_zaman"          // habitual present (yaparım)
	IstekKipi          Tense = "istek_kipi"           // optative (yapayım)
	EmirKipi           Tense = "emir_kipi"            // imperative (yap!)
	SartKipi           Tense = "şart_kipi"            // conditional (yapsam)
	GereklilikKipi     Tense = "gereklilik_kipi"      // necessity (yapmam lazım)
	ImkanKipi          Tense = "imkan_kipi"           // ability (yapabilirim)
	ZorunlulukKipi     Tense = "zorunluluk_kipi"      // obligation (yapmalıyım)
	GecmisGelecekZaman Tense = "geçmiş_gelecek_zaman" // past future (yapacaktım)
	SartliKipi         Tense = "şartlı_kipi"          // real conditional (yaparsam)
	FarziGecmisZaman   Tense = "farzî_geçmiş_zaman"   // past conditional (yaptıysam)
	SifatFiil          Tense = "sıfat_fiil"           // present participle (yapan)
	ZarfFiil           Tense = "zarf_fiil"            // gerund (yaparak)
	UlakFiil           Tense = "ulak_fiil"            // perfect participle (yapıp)
	ZamanSifati        Tense = "zaman_sıfatı"         // temporal clause (yaptığımda)
)

// PronounCategory classifies a tense by which personal pronouns it
// combines with.
type PronounCategory int

const (
	// CategoryNone: impersonal forms (participles, gerunds); no pronoun.
	CategoryNone PronounCategory = iota
	// CategoryFull: all six pronouns.
	CategoryFull
	// CategoryImperative: sen, o, siz, onlar only.
	CategoryImperative
)

// Pronouns returns the pronoun set for the category, nil for CategoryNone.
func (c PronounCategory) Pronouns() []Pronoun {
	switch c {
	case CategoryFull:
		return AllPronouns
	case CategoryImperative:
		return ImperativePronouns
	default:
		return nil
	}
}

// FormInfo describes a tense's required level and pronoun behavior.
type FormInfo struct {
	Tense    Tense
	Level    Level
	Category PronounCategory
}

// Forms is the static verb-form table, in enumeration order. zaman_sıfatı
// takes type II (possessive) personal affixes but combines with the full
// pronoun set, so it is CategoryFull here.
var Forms = []FormInfo{
	{SimdikiZaman, A1, CategoryFull},
	{GecmisZaman, A1, CategoryFull},
	{GelecekZaman, A2, CategoryFull},
	{Yaracagim, A2, CategoryFull},
	{GenisZaman, A1, CategoryFull},
	{IstekKipi, B1, CategoryFull},
	{EmirKipi, A2, CategoryImperative},
	{SartKipi, B1, CategoryFull},
	{GereklilikKipi, A2, CategoryFull},
	{ImkanKipi, A2, CategoryFull},
	{ZorunlulukKipi, A2, CategoryFull},
	{GecmisGelecekZaman, B2, CategoryFull},
	{SartliKipi, B1, CategoryFull},
	{FarziGecmisZaman, B2, CategoryFull},
	{SifatFiil, B1, CategoryNone},
	{ZarfFiil, B2, CategoryNone},
	{UlakFiil, B1, CategoryNone},
	{ZamanSifati, B2, CategoryFull},
}

var formsByTense = func() map[Tense]FormInfo {
	m := make(map[Tense]FormInfo, len(Forms))
	for _, f := range Forms {
		m[f.Tense] = f
	}
	return m
}()

// FormFor looks up the form table entry for a tense.
func FormFor(t Tense) (FormInfo, bool) {
	f, ok := formsByTense[t]
	return f, ok
}

// ValidTense reports whether t names a tense in the form table.
func ValidTense(t Tense) bool {
	_, ok := formsByTense[t]
	return ok
}

// ExpectedPairs returns every (pronoun, polarity) combination a batch for
// the tense must contain. CategoryNone yields two pairs with an empty
// pronoun, one per polarity.
func ExpectedPairs(t Tense) []PronounPolarity {
	form, ok := formsByTense[t]
	if !ok {
		return nil
	}
	pronouns := form.Category.Pronouns()
	if pronouns == nil {
		return []PronounPolarity{
			{Polarity: Positive},
			{Polarity: Negative},
		}
	}
	pairs := make([]PronounPolarity, 0, len(pronouns)*2)
	for _, pr := range pronouns {
		for _, pol := range Polarities {
			pairs = append(pairs, PronounPolarity{Pronoun: pr, Polarity: pol})
		}
	}
	return pairs
}

// PronounPolarity is one required combination within a batch.
type PronounPolarity struct {
	Pronoun  Pronoun // empty for impersonal tenses
	Polarity Polarity
}

func (p PronounPolarity) String() string {
	pr := string(p.Pronoun)
	if pr == "" {
		pr = "none"
	}
	return "(" + pr + ", " + string(p.Polarity) + ")"
}
