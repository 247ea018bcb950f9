package app

import (
	"gorm.io/gorm"

	assessrepo "github.com/skillpath/roadmap-backend/internal/data/repos/assessment"
	roadmaprepo "github.com/skillpath/roadmap-backend/internal/data/repos/roadmap"
	userrepo "github.com/skillpath/roadmap-backend/internal/data/repos/user"
	"github.com/skillpath/roadmap-backend/internal/pkg/logger"
)

type Repos struct {
	User         userrepo.UserRepo
	Question     assessrepo.QuestionRepo
	Result       assessrepo.ResultRepo
	Topic        roadmaprepo.TopicRepo
	Prerequisite roadmaprepo.PrerequisiteRepo
	Progress     roadmaprepo.ProgressRepo
	Resource     roadmaprepo.ResourceRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:         userrepo.NewUserRepo(db, log),
		Question:     assessrepo.NewQuestionRepo(db, log),
		Result:       assessrepo.NewResultRepo(db, log),
		Topic:        roadmaprepo.NewTopicRepo(db, log),
		Prerequisite: roadmaprepo.NewPrerequisiteRepo(db, log),
		Progress:     roadmaprepo.NewProgressRepo(db, log),
		Resource:     roadmaprepo.NewResourceRepo(db, log),
	}
}
