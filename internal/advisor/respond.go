package advisor

import "strings"

// Canned replies, in the order Respond checks them.
const (
	ReplyTired       = "I see you are tired today. Let's focus on rest and gentle activity."
	ReplyPain        = "Oh no! I suggest light stretching and avoiding heavy exercise."
	ReplyMedication  = "Remember to take your medication at 12:00 PM. Keeping it next to your water glass helps."
	ReplyAppointment = "Write the appointment down and ask a family member to remind you the day before."
	ReplyDiet        = "Try to eat regular, balanced meals and drink plenty of water today."
	ReplyEmotional   = "I'm sorry you're feeling this way. A relaxing activity or a call with family can help."
	ReplyPositive    = "Great to hear! Keep up your positive energy today!"
	ReplyGreeting    = "Thanks for logging in! Let's plan your day."
	ReplyDefault     = "Got it! I'll make sure today's plan suits how you're feeling."
)

type replyRule struct {
	topic    string
	keywords []string
	reply    string
}

// replyRules is checked top to bottom; the first rule with a matching
// keyword answers.
var replyRules = []replyRule{
	{"fatigue", []string{"tired", "exhausted"}, ReplyTired},
	{"pain", []string{"pain", "sore", "ache"}, ReplyPain},
	{"medication", []string{"medication", "medicine", "pill", "dose"}, ReplyMedication},
	{"appointment", []string{"appointment", "doctor", "checkup"}, ReplyAppointment},
	{"diet", []string{"food", "meal", "diet", "eating", "hungry", "breakfast", "lunch", "dinner"}, ReplyDiet},
	{"emotional", []string{"sad", "stress", "anxious", "lonely", "worried"}, ReplyEmotional},
	{"positive", []string{"happy", "great", "good"}, ReplyPositive},
}

// Respond returns the canned reply for message. It keeps no state between
// calls.
func Respond(message string) string {
	reply, _ := Classify(message)
	return reply
}

// Classify returns the reply together with the topic that produced it:
// one of the rule topics, "greeting" for an empty message, or "default".
func Classify(message string) (reply, topic string) {
	text := strings.ToLower(strings.TrimSpace(message))
	if text == "" {
		return ReplyGreeting, "greeting"
	}
	for _, r := range replyRules {
		if containsAny(text, r.keywords...) {
			return r.reply, r.topic
		}
	}
	return ReplyDefault, "default"
}
