// Package chatbot is the scripted helper: an ordered rule list matched
// against the lowercased message, first hit wins.
package chatbot

import "strings"

type rule struct {
	keywords []string
	reply    string
}

// matches reports whether any keyword occurs in the message.
func (r rule) matches(msg string) bool {
	for _, kw := range r.keywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}

// Rule order matters: earlier rules shadow later ones.
var rules = []rule{
	{[]string{"merhaba", "selam", "hello"}, "Merhaba! Size nasıl yardımcı olabilirim?"},
	{[]string{"nasılsın", "nasilsin"}, "Ben iyiyim, teşekkürler! Siz nasılsınız?"},
	{[]string{"timer", "zamanlayıcı", "sayaç"}, "Timer sekmesinde serbest ya da plandan çalışma başlatabilirsiniz."},
	{[]string{"takvim", "ders", "plan"}, "Planner sekmesinde haftalık derslerinizi planlayabilirsiniz."},
	{[]string{"net", "deneme", "tyt", "ayt"}, "Deneme netlerinizi Results sekmesinde kaydedip takip edebilirsiniz."},
}

const fallback = "Üzgünüm, bu konuda size yardımcı olamıyorum."

// Respond returns the scripted reply for msg. Matching is case-insensitive;
// an unmatched message gets the fallback reply.
func Respond(msg string) string {
	msg = strings.ToLower(strings.TrimSpace(msg))
	for _, r := range rules {
		if r.matches(msg) {
			return r.reply
		}
	}
	return fallback
}
