package model

import (
	"time"

	"github.com/google/uuid"
)

// Estado / Cidade / Bairro form the cascading address hierarchy used by the
// client and supplier forms. Children are always resolved by parent id.

type Estado struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"not null"`
	UF        string    `gorm:"column:uf;uniqueIndex;not null;type:varchar(2)"`
	CreatedAt time.Time

	Cidades []Cidade `gorm:"foreignKey:EstadoID"`
}

type Cidade struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"not null"`
	EstadoID  uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt time.Time

	Bairros []Bairro `gorm:"foreignKey:CidadeID"`
}

type Bairro struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"not null"`
	CidadeID  uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt time.Time
}
