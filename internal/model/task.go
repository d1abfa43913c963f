package model

type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Result сообщает вызывающему, что произошло с мутацией.
// Страница и CLI его игнорируют, API превращает в статус-код.
type Result int

const (
	Applied Result = iota
	RejectedEmpty
	NotFound
)

func (r Result) String() string {
	switch r {
	case Applied:
		return "applied"
	case RejectedEmpty:
		return "rejected_empty"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Phase - однонаправленный жизненный цикл загрузки состояния.
type Phase int32

const (
	Uninitialized Phase = iota
	Hydrating
	Ready
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Hydrating:
		return "hydrating"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

func PendingCount(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}
