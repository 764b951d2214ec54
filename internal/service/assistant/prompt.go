package assistant

import "strings"

const condenseTemplate = `Given the following conversation and a follow up question, rephrase the follow up question to be a standalone question, in its original language.

Chat History:
{chat_history}
Follow Up Input: {question}
Standalone question:`

const answerTemplate = `You are an intelligent assistant answering questions about {name}'s resume and personal profile.
Use the extracted context below, **but do not limit yourself to it**.

If something is not directly stated, make logical inferences based on:
- Her experience
- Her listed skills and technologies
- Personal interests (if mentioned)
- Standard industry practices

If the question asks for contact information and it's mentioned in the resume, provide it directly.

If the answer cannot be found or reasonably inferred, respond:
"{unavailable}"

Be thoughtful and confident.

Resume Context:
{context}

Conversation so far:
{chat_history}

Question: {question}
Answer:`

// fill substitutes {key} placeholders in one pass, so values containing
// braces are never expanded again.
func fill(tmpl string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
