// Package i18n holds the localized prompt and response templates, indexed
// by (language, slot). The table is validated at startup: a slot missing
// from any supported language, or with mismatched parameters between
// languages, is a configuration fault that prevents process start.
package i18n

import (
	"fmt"
	"strings"
)

// Slot names one templated message. Every slot exists in every language.
type Slot string

const (
	SlotGreet          Slot = "greet"
	SlotResume         Slot = "resume"
	SlotAskName        Slot = "ask_name"
	SlotNameEmpty      Slot = "name_empty"
	SlotNameTooLong    Slot = "name_too_long"
	SlotNameNumeric    Slot = "name_numeric"
	SlotNameCommand    Slot = "name_command"
	SlotAskParty       Slot = "ask_party"
	SlotPartyNaN       Slot = "party_nan"
	SlotPartyTooSmall  Slot = "party_too_small"
	SlotPartyTooLarge  Slot = "party_too_large"
	SlotAskDate        Slot = "ask_date"
	SlotDateFormat     Slot = "date_format"
	SlotDateCalendar   Slot = "date_calendar"
	SlotDatePast       Slot = "date_past"
	SlotDateTooFar     Slot = "date_too_far"
	SlotAskTime        Slot = "ask_time"
	SlotTimeFormat     Slot = "time_format"
	SlotTimeOutside    Slot = "time_outside"
	SlotAskEvent       Slot = "ask_event"
	SlotEventAck       Slot = "event_ack"
	SlotEventCustom    Slot = "event_custom"
	SlotAskMenu        Slot = "ask_menu"
	SlotMenuInvalid    Slot = "menu_invalid"
	SlotMenuChosen     Slot = "menu_chosen"
	SlotAskAddons      Slot = "ask_addons"
	SlotAddonsUnknown  Slot = "addons_unknown"
	SlotSummary        Slot = "summary"
	SlotConfirmUnknown Slot = "confirm_unknown"
	SlotConfirmed      Slot = "confirmed"
	SlotCancelled      Slot = "cancelled"
	SlotCancelledRes   Slot = "cancelled_reservation"
	SlotRestarted      Slot = "restarted"
	SlotHelp           Slot = "help"
	SlotMenuReference  Slot = "menu_reference"
	SlotLanguageSet    Slot = "language_set"
	SlotErrorGeneric   Slot = "error_generic"
)

// allSlots drives the completeness check
var allSlots = []Slot{
	SlotGreet, SlotResume,
	SlotAskName, SlotNameEmpty, SlotNameTooLong, SlotNameNumeric, SlotNameCommand,
	SlotAskParty, SlotPartyNaN, SlotPartyTooSmall, SlotPartyTooLarge,
	SlotAskDate, SlotDateFormat, SlotDateCalendar, SlotDatePast, SlotDateTooFar,
	SlotAskTime, SlotTimeFormat, SlotTimeOutside,
	SlotAskEvent, SlotEventAck, SlotEventCustom,
	SlotAskMenu, SlotMenuInvalid, SlotMenuChosen, SlotAskAddons, SlotAddonsUnknown,
	SlotSummary, SlotConfirmUnknown, SlotConfirmed,
	SlotCancelled, SlotCancelledRes, SlotRestarted,
	SlotHelp, SlotMenuReference, SlotLanguageSet, SlotErrorGeneric,
}

// Table maps language → slot → fmt template
type Table struct {
	templates map[string]map[Slot]string
}

// Default returns the built-in English + Tamil table
func Default() *Table {
	return &Table{templates: map[string]map[Slot]string{
		"en": englishTemplates,
		"ta": tamilTemplates,
	}}
}

// Languages returns the language codes the table covers
func (t *Table) Languages() []string {
	out := make([]string, 0, len(t.templates))
	for lang := range t.templates {
		out = append(out, lang)
	}
	return out
}

// Render formats the template for (language, slot). Unknown languages fall
// back to English; Validate guarantees the slot itself exists.
func (t *Table) Render(language string, slot Slot, args ...any) string {
	byLang, ok := t.templates[language]
	if !ok {
		byLang = t.templates["en"]
	}
	tmpl, ok := byLang[slot]
	if !ok {
		tmpl = t.templates["en"][slot]
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// Validate checks that every slot exists in every language and that the
// translations take the same parameters
func (t *Table) Validate() error {
	ref, ok := t.templates["en"]
	if !ok {
		return fmt.Errorf("i18n: english table is missing")
	}
	for _, slot := range allSlots {
		refTmpl, ok := ref[slot]
		if !ok {
			return fmt.Errorf("i18n: slot %q missing from language \"en\"", slot)
		}
		refVerbs := countVerbs(refTmpl)
		for lang, byLang := range t.templates {
			tmpl, ok := byLang[slot]
			if !ok {
				return fmt.Errorf("i18n: slot %q missing from language %q", slot, lang)
			}
			if n := countVerbs(tmpl); n != refVerbs {
				return fmt.Errorf("i18n: slot %q takes %d parameters in \"en\" but %d in %q", slot, refVerbs, n, lang)
			}
		}
	}
	return nil
}

// countVerbs counts fmt parameters, ignoring escaped percent signs
func countVerbs(tmpl string) int {
	return strings.Count(tmpl, "%") - 2*strings.Count(tmpl, "%%")
}

var englishTemplates = map[Slot]string{
	SlotGreet: "👋 Welcome to %s!\n\nI'm your table booking assistant. Send any message to start a reservation.\n\nType 'menu' to browse our menu packs, 'help' for commands.\n_Type 'tamil' to switch to தமிழ்_",
	SlotResume: "You already have a booking in progress. Let's continue!\n\n%s",

	SlotAskName:     "Wonderful, let's get started! 📝\n\nWhat name should I note for the reservation?",
	SlotNameEmpty:   "I didn't catch a name there. Could you tell me your name?",
	SlotNameTooLong: "That name is a bit long for my notepad — could you keep it under %d characters?",
	SlotNameNumeric: "That looks like a number, not a name. What's your name?",
	SlotNameCommand: "That's one of my command words, so I can't use it as a name. What's your name?",

	SlotAskParty:      "Nice to meet you, %s! 😊\n\nHow many guests should I book for?",
	SlotPartyNaN:      "I need a number of guests. How many people will be joining?",
	SlotPartyTooSmall: "We need at least %d guest(s) for a booking. How many will be coming?",
	SlotPartyTooLarge: "We can seat at most %d guests per booking. For larger crowds please call %s.",

	SlotAskDate:      "When would you like to visit us? 📅\n\n_Please enter the date as DD-MM-YYYY (e.g. 25-12-2026)_",
	SlotDateFormat:   "I couldn't read that date. Please use DD-MM-YYYY format, e.g. 25-12-2026.",
	SlotDateCalendar: "That date doesn't exist on my calendar. Please double-check it (DD-MM-YYYY).",
	SlotDatePast:     "That date has already passed! Please pick an upcoming date.",
	SlotDateTooFar:   "We only take bookings up to %d days in advance. Could you pick an earlier date?",

	SlotAskTime:     "What time should we expect you? ⏰\n\n_We're open %02d:00 to %02d:00 — say '7 PM' or '19:00'_",
	SlotTimeFormat:  "I couldn't read that time. Try something like '7 PM', '7:30 PM' or '19:00'.",
	SlotTimeOutside: "We're open from %02d:00 to %02d:00. Please pick a time within those hours.",

	SlotAskEvent:    "What's the occasion? 🎊\n\n• Birthday\n• Anniversary\n• Engagement\n• Corporate Event\n• Family Dinner\n• Friends Gathering\n\n_Or just describe your event_",
	SlotEventAck:    "A %s — how exciting! 🎉\n\n💡 %s",
	SlotEventCustom: "A %s — we'll make it special! ✨",

	SlotAskMenu:     "Now for the delicious part! 🍽️ Choose your menu pack:\n\n%s\n_Reply with the pack name or number_",
	SlotMenuInvalid: "I don't recognize that menu pack. Please choose one of: %s.",
	SlotMenuChosen:  "Great choice — the %s it is! 👌",

	SlotAskAddons:     "Any add-ons to make it extra special? ✨\n\n%s\n_Type what you want (comma separated) or 'none'_",
	SlotAddonsUnknown: "I didn't recognize: %s. I've noted the rest!",

	SlotSummary: "📋 Booking Summary\n━━━━━━━━━━━━━━━━\n👤 Name: %s\n👥 Guests: %d\n📅 Date: %s\n⏰ Time: %s\n🎊 Event: %s\n🍽️ Menu: %s\n✨ Add-ons: %s\n\n💰 Menu: ₹%d + Add-ons: ₹%d\n*Total: ₹%d*\n\nShall I confirm? (yes/no)",
	SlotConfirmUnknown: "Please reply 'yes' to confirm or 'no' to change the menu.\n\n%s",

	SlotConfirmed: "🎉 BOOKING CONFIRMED! 🎉\n\nThank you %s! Your table is ready.\n\n🎫 Reservation ID: *%s*\n📅 %s at %s\n👥 %d guests · %s\n💰 Total: ₹%d\n\n📍 %s · 📞 %s\nSee you soon! 🙏",

	SlotCancelled:    "No problem, your booking has been cancelled. Send 'hi' anytime to start again!",
	SlotCancelledRes: "Your reservation %s has been cancelled. Hope to see you another time!",
	SlotRestarted:    "Fresh start! 😊 All previous answers cleared.\n\n%s",

	SlotHelp: "ℹ️ I can help you book a table at %s.\n\nCommands:\n• restart — start over\n• cancel — abandon the booking\n• menu — see menu packs\n• tamil / english — switch language\n\nQuestions? Call %s.",
	SlotMenuReference: "🍽️ Our Menu Packs\n━━━━━━━━━━━━━━━━\n%s",
	SlotLanguageSet:   "✅ Language set to English.\n\n%s",
	SlotErrorGeneric:  "Sorry, something went wrong on my side. Please resend your message, or type 'restart' to start over.",
}

var tamilTemplates = map[Slot]string{
	SlotGreet: "👋 %s-க்கு வரவேற்கிறோம்!\n\nநான் உங்க table booking assistant. Reservation தொடங்க ஏதாவது message அனுப்புங்க.\n\nMenu பார்க்க 'menu', commands-க்கு 'help'.\n_English-க்கு 'english' என type பண்ணுங்க_",
	SlotResume: "உங்க booking நடந்துகிட்டு இருக்கு. தொடரலாம்!\n\n%s",

	SlotAskName:     "சூப்பர், ஆரம்பிக்கலாம்! 📝\n\nBooking-க்கு என்ன பெயர் குறிக்கட்டும்?",
	SlotNameEmpty:   "பெயர் புரியல. உங்க பெயர் சொல்லுங்க?",
	SlotNameTooLong: "பெயர் கொஞ்சம் நீளமா இருக்கு — %d எழுத்துக்குள் சொல்ல முடியுமா?",
	SlotNameNumeric: "அது number மாதிரி இருக்கு. உங்க பெயர் என்ன?",
	SlotNameCommand: "அது என்னோட command வார்த்தை, அதனால பெயரா எடுக்க முடியாது. உங்க பெயர் என்ன?",

	SlotAskParty:      "உங்களை சந்தித்ததில் மகிழ்ச்சி, %s! 😊\n\nஎத்தனை பேருக்கு book பண்ணட்டும்?",
	SlotPartyNaN:      "விருந்தினர் எண்ணிக்கை number-ஆ சொல்லுங்க. எத்தனை பேர் வருவீங்க?",
	SlotPartyTooSmall: "Booking-க்கு குறைந்தது %d பேர் வேணும். எத்தனை பேர் வருவீங்க?",
	SlotPartyTooLarge: "ஒரு booking-க்கு அதிகபட்சம் %d பேர் தான். பெரிய கூட்டத்துக்கு %s-ல call பண்ணுங்க.",

	SlotAskDate:      "எந்த தேதி வர விரும்புறீங்க? 📅\n\n_DD-MM-YYYY format-ல சொல்லுங்க (எ.கா. 25-12-2026)_",
	SlotDateFormat:   "தேதி புரியல. DD-MM-YYYY format-ல சொல்லுங்க, எ.கா. 25-12-2026.",
	SlotDateCalendar: "அந்த தேதி calendar-ல இல்லையே. மறுபடி சரிபார்த்து சொல்லுங்க (DD-MM-YYYY).",
	SlotDatePast:     "அந்த தேதி already போயிடுச்சே! வரப்போற தேதி சொல்லுங்க.",
	SlotDateTooFar:   "%d நாட்களுக்குள் உள்ள தேதிகளுக்கு மட்டும் booking எடுக்கிறோம். கொஞ்சம் முன்னாடி தேதி சொல்லுங்க?",

	SlotAskTime:     "என்ன நேரத்துக்கு வருவீங்க? ⏰\n\n_நாங்க %02d:00 முதல் %02d:00 வரை open — '7 PM' அல்லது '19:00' சொல்லுங்க_",
	SlotTimeFormat:  "நேரம் புரியல. '7 PM', '7:30 PM' அல்லது '19:00' மாதிரி சொல்லுங்க.",
	SlotTimeOutside: "நாங்க %02d:00 முதல் %02d:00 வரை open. அந்த நேரத்துக்குள் ஒரு time சொல்லுங்க.",

	SlotAskEvent:    "என்ன விசேஷம்? 🎊\n\n• Birthday\n• Anniversary\n• Engagement\n• Corporate Event\n• Family Dinner\n• Friends Gathering\n\n_அல்லது உங்க நிகழ்ச்சியை சொல்லுங்க_",
	SlotEventAck:    "%s-ஆ! சூப்பர்! 🎉\n\n💡 %s",
	SlotEventCustom: "%s — ஸ்பெஷலா பண்ணிடலாம்! ✨",

	SlotAskMenu:     "இப்போ சுவையான பகுதி! 🍽️ உங்க menu pack-ஐ தேர்வு செய்யுங்க:\n\n%s\n_Pack பெயர் அல்லது number சொல்லுங்க_",
	SlotMenuInvalid: "அந்த menu pack தெரியல. இதுல ஒன்னு சொல்லுங்க: %s.",
	SlotMenuChosen:  "சூப்பர் choice — %s! 👌",

	SlotAskAddons:     "இன்னும் ஸ்பெஷலா பண்ண add-ons வேணுமா? ✨\n\n%s\n_கமாவால் பிரித்து எழுதுங்க அல்லது 'none'_",
	SlotAddonsUnknown: "இவை புரியல: %s. மத்ததை குறிச்சிட்டேன்!",

	SlotSummary: "📋 Booking Summary\n━━━━━━━━━━━━━━━━\n👤 பெயர்: %s\n👥 விருந்தினர்: %d\n📅 தேதி: %s\n⏰ நேரம்: %s\n🎊 நிகழ்ச்சி: %s\n🍽️ மெனு: %s\n✨ கூடுதல்: %s\n\n💰 மெனு: ₹%d + கூடுதல்: ₹%d\n*மொத்தம்: ₹%d*\n\nConfirm பண்ணட்டுமா? (yes/no)",
	SlotConfirmUnknown: "Confirm பண்ண 'yes', menu மாத்த 'no' சொல்லுங்க.\n\n%s",

	SlotConfirmed: "🎉 BOOKING CONFIRMED! 🎉\n\nநன்றி %s! உங்க table ready.\n\n🎫 Reservation ID: *%s*\n📅 %s, %s மணிக்கு\n👥 %d பேர் · %s\n💰 மொத்தம்: ₹%d\n\n📍 %s · 📞 %s\nசீக்கிரம் பார்க்கலாம்! 🙏",

	SlotCancelled:    "பரவாயில்ல, உங்க booking cancel ஆயிடுச்சு. மறுபடி தொடங்க 'hi' அனுப்புங்க!",
	SlotCancelledRes: "உங்க reservation %s cancel ஆயிடுச்சு. இன்னொரு முறை பார்க்கலாம்!",
	SlotRestarted:    "Fresh start! 😊 பழைய பதில்கள் எல்லாம் அழிக்கப்பட்டது.\n\n%s",

	SlotHelp: "ℹ️ %s-ல table book பண்ண நான் help பண்றேன்.\n\nCommands:\n• restart — முதல்ல இருந்து தொடங்க\n• cancel — booking-ஐ விட\n• menu — menu packs பார்க்க\n• tamil / english — மொழி மாற்ற\n\nகேள்விகளா? %s-ல call பண்ணுங்க.",
	SlotMenuReference: "🍽️ எங்கள் மெனு பேக்கேஜ்கள்\n━━━━━━━━━━━━━━━━\n%s",
	SlotLanguageSet:   "✅ மொழி தமிழாக மாற்றப்பட்டது.\n\n%s",
	SlotErrorGeneric:  "Sorry, ஏதோ problem ஆயிடுச்சு. Message-ஐ மறுபடி அனுப்புங்க, அல்லது 'restart' என type பண்ணுங்க.",
}
