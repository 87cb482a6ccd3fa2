package domain

// Fixed user-facing responses. The dataset and its users are Korean, so the
// terminal messages match the mobile client's language.
const (
	// AnswerEmptyQuestion is returned when the trimmed question is empty.
	AnswerEmptyQuestion = "질문이 비어 있습니다."
	// AnswerNoDocuments is returned when both collections yield zero candidates.
	AnswerNoDocuments = "데이터베이스에서 문서를 찾지 못했습니다."
	// AnswerNoResponse substitutes a structurally empty completion.
	AnswerNoResponse = "응답이 없습니다."
	// AnswerServerError is the generic message for any unrecovered failure.
	AnswerServerError = "서버 오류가 발생했습니다."
)

// Answer is the result of one RAG invocation: the generated (or fixed
// terminal) answer text plus citations for the candidates it was grounded on.
// Sources is nil for terminal states that never reached ranking.
type Answer struct {
	Text    string
	Sources []SourceRef
}
