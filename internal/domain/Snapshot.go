package domain

import "time"

// CivilDateLayout é o formato da data civil usada como chave dos snapshots
const CivilDateLayout = "2006-01-02"

// Snapshot representa o conjunto de campanhas de um dia encerrado,
// chaveado pela data civil no fuso canônico. Existe no máximo um
// snapshot por data; escritas repetidas para a mesma data sobrescrevem
// o registro anterior (last-write-wins).
type Snapshot struct {
	Date      string     `json:"date"`
	Campaigns []Campaign `json:"campaigns"`
	CreatedAt time.Time  `json:"created_at,omitempty"`
}

// BoundarySignal é o payload tipado emitido quando a vigia de fronteira
// detecta o avanço da data civil. Timezone carrega o identificador do
// fuso em que a fronteira foi calculada, para validação no scheduler.
type BoundarySignal struct {
	NewDate      string `json:"new_date"`
	PreviousDate string `json:"previous_date"`
	Timezone     string `json:"timezone"`
}
