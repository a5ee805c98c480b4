// Package messages holds the user-facing copy in every supported language.
package messages

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Key string

const (
	InvalidEmail       Key = "invalid_email"
	NoTitleSelected    Key = "no_title_selected"
	GenericFailure     Key = "generic_failure"
	GenericSuccess     Key = "generic_success"
	MissingToken       Key = "missing_token"
	UnsubscribeLoading Key = "unsubscribe_loading"
	SubscribeLoading   Key = "subscribe_loading"

	PageHomeTitle        Key = "page_home_title"
	PageUnsubscribeTitle Key = "page_unsubscribe_title"
	PageInfoTitle        Key = "page_info_title"
	HomeIntro            Key = "home_intro"
	HomeProviderWarning  Key = "home_provider_warning"
	EmailLabel           Key = "email_label"
	EmailPlaceholder     Key = "email_placeholder"
	TitlesLabel          Key = "titles_label"
	SubmitButton         Key = "submit_button"
	NavHome              Key = "nav_home"
	NavInfo              Key = "nav_info"
	InfoBody             Key = "info_body"
	NotFound             Key = "not_found"
)

var supported = []language.Tag{language.Italian, language.English}

var matcher = language.NewMatcher(supported)

var translations = map[language.Tag]map[Key]string{
	language.Italian: {
		InvalidEmail:         "Per favore inserisci un indirizzo email valido.",
		NoTitleSelected:      "Per favore seleziona almeno un manga.",
		GenericFailure:       "Si è verificato un errore. Per favore riprova più tardi.",
		GenericSuccess:       "Operazione completata.",
		MissingToken:         "Nessun token di disiscrizione trovato.",
		UnsubscribeLoading:   "Elaborazione disiscrizione in corso...",
		SubscribeLoading:     "Iscrizione in corso...",
		PageHomeTitle:        "Manga Alert Italia",
		PageUnsubscribeTitle: "Disiscrizione",
		PageInfoTitle:        "Informazioni",
		HomeIntro:            "Scegli i tuoi manga preferiti e iscriviti: ti invieremo una mail per ricordarti la loro uscita un mese prima, poi una settimana prima, e infine un giorno prima. In questo modo non perderai mai un volume!",
		HomeProviderWarning:  "IMPORTANTE: a causa di alcune limitazioni imposte dal nostro provider Email, non siamo in grado di inviare mail a Outlook, Hotmail, Yahoo e Live. Vi consigliamo di usare un indirizzo Google (gmail) per registrarvi alla newsletter e di controllare la cartella spam in caso non riusciste a trovare la mail di benvenuto.",
		EmailLabel:           "Indirizzo Email",
		EmailPlaceholder:     "Inserisci la tua email",
		TitlesLabel:          "Seleziona Manga",
		SubmitButton:         "Iscriviti",
		NavHome:              "Home",
		NavInfo:              "Informazioni",
		InfoBody:             "Manga Alert Italia è un progetto amatoriale che ti avvisa via email dell'uscita dei nuovi volumi dei tuoi manga preferiti. Ogni email contiene un link per annullare l'iscrizione in qualsiasi momento.",
		NotFound:             "Pagina non trovata.",
	},
	language.English: {
		InvalidEmail:         "Please enter a valid email address.",
		NoTitleSelected:      "Please select at least one manga.",
		GenericFailure:       "Something went wrong. Please try again later.",
		GenericSuccess:       "Done.",
		MissingToken:         "No unsubscribe token found.",
		UnsubscribeLoading:   "Processing your unsubscription...",
		SubscribeLoading:     "Subscribing...",
		PageHomeTitle:        "Manga Alert Italia",
		PageUnsubscribeTitle: "Unsubscribe",
		PageInfoTitle:        "About",
		HomeIntro:            "Pick your favourite manga and subscribe: we will email you a month before each release, then a week before, and finally the day before. You will never miss a volume!",
		HomeProviderWarning:  "IMPORTANT: because of limits set by our email provider we cannot deliver to Outlook, Hotmail, Yahoo and Live addresses. Please register with a Google (gmail) address and check your spam folder if the welcome email does not arrive.",
		EmailLabel:           "Email address",
		EmailPlaceholder:     "Enter your email",
		TitlesLabel:          "Select manga",
		SubmitButton:         "Subscribe",
		NavHome:              "Home",
		NavInfo:              "About",
		InfoBody:             "Manga Alert Italia is a hobby project that emails you when new volumes of your favourite manga come out. Every email carries a link to unsubscribe at any time.",
		NotFound:             "Page not found.",
	},
}

func init() {
	for tag, entries := range translations {
		for key, text := range entries {
			if err := message.SetString(tag, string(key), text); err != nil {
				panic(err)
			}
		}
	}
}

// Localizer renders message keys in a single language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

func NewLocalizer(tag language.Tag) *Localizer {
	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag),
	}
}

func (l *Localizer) Text(key Key) string {
	return l.printer.Sprintf(string(key))
}

func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// Negotiate picks the supported language that best fits the given preferences.
// Each preference may be a bare tag ("en") or a full Accept-Language header.
// fallback is returned when nothing matches.
func Negotiate(fallback language.Tag, preferences ...string) language.Tag {
	for _, pref := range preferences {
		pref = strings.TrimSpace(pref)
		if pref == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(pref)
		if err != nil || len(tags) == 0 {
			continue
		}
		_, idx, confidence := matcher.Match(tags...)
		if confidence == language.No {
			continue
		}
		return supported[idx]
	}
	return fallback
}

// ParseFallback parses a configured default language, falling back to Italian.
func ParseFallback(s string) language.Tag {
	tag, err := language.Parse(s)
	if err != nil {
		return language.Italian
	}
	_, idx, confidence := matcher.Match(tag)
	if confidence == language.No {
		return language.Italian
	}
	return supported[idx]
}
