package models

// Requests accept the English keys and the Portuguese keys the original
// browser pages post (nome, local, hora_inicio, hora_fim, mensagem).

// AddPersonRequest registers a new person.
type AddPersonRequest struct {
	Name     string `json:"name" binding:"required_without=Nome"`
	Nome     string `json:"nome" binding:"required_without=Name"`
	Location string `json:"location" binding:"required_without=Local"`
	Local    string `json:"local" binding:"required_without=Location"`
}

func (r AddPersonRequest) PersonName() string { return firstSet(r.Name, r.Nome) }

func (r AddPersonRequest) PersonLocation() string { return firstSet(r.Location, r.Local) }

// PersonIDRequest addresses one person; used by start and delete.
type PersonIDRequest struct {
	ID uint `json:"id" binding:"required"`
}

// EditTimeRequest carries civil times of day as HH:mm:ss. An empty end
// means the start plus the activity duration.
type EditTimeRequest struct {
	ID         uint   `json:"id" binding:"required"`
	StartTime  string `json:"startTime" binding:"required_without=HoraInicio"`
	HoraInicio string `json:"hora_inicio" binding:"required_without=StartTime"`
	EndTime    string `json:"endTime"`
	HoraFim    string `json:"hora_fim"`
}

func (r EditTimeRequest) Start() string { return firstSet(r.StartTime, r.HoraInicio) }

func (r EditTimeRequest) End() string { return firstSet(r.EndTime, r.HoraFim) }

type EditLocationRequest struct {
	ID       uint   `json:"id" binding:"required"`
	Location string `json:"location" binding:"required_without=Local"`
	Local    string `json:"local" binding:"required_without=Location"`
}

func (r EditLocationRequest) NewLocation() string { return firstSet(r.Location, r.Local) }

// SendMessageRequest sets the annotation; an empty message clears it.
type SendMessageRequest struct {
	ID       uint   `json:"id" binding:"required"`
	Message  string `json:"message"`
	Mensagem string `json:"mensagem"`
}

func (r SendMessageRequest) Text() string { return firstSet(r.Message, r.Mensagem) }

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
