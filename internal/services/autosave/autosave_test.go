package autosave_test

import (
	"errors"
	"testing"

	domain "github.com/daybook/daybook/internal/domain/planner"
	"github.com/daybook/daybook/internal/events"
	mockdocuments "github.com/daybook/daybook/internal/mocks/documents"
	"github.com/daybook/daybook/internal/services/autosave"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// stubSource serves open documents from a fixed map
type stubSource struct {
	docs map[string]*domain.Document
}

func (s *stubSource) Document(documentID string) (*domain.Document, bool) {
	doc, ok := s.docs[documentID]
	return doc, ok
}

type AutosaveSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	repo     *mockdocuments.MockRepository
	bus      *events.Bus
	source   *stubSource
	saver    *autosave.Saver
}

func TestAutosaveSuite(t *testing.T) {
	suite.Run(t, new(AutosaveSuite))
}

func (s *AutosaveSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.repo = mockdocuments.NewMockRepository(s.mockCtrl)
	s.bus = events.NewBus()
	s.source = &stubSource{docs: map[string]*domain.Document{
		"doc-1": {ID: "doc-1", Title: "Week 35"},
	}}
	s.saver = autosave.New(&autosave.Config{
		Repository: s.repo,
		Bus:        s.bus,
		Source:     s.source,
	})
}

func (s *AutosaveSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *AutosaveSuite) TestPersistsOnMutation() {
	var saved []*events.DocumentSavedPayload
	s.bus.Subscribe(events.EventTypeDocumentSaved, func(evt events.Event) error {
		saved = append(saved, evt.Payload.(*events.DocumentSavedPayload))
		return nil
	})

	s.repo.EXPECT().Update(gomock.Any(), s.source.docs["doc-1"]).Return(nil)

	s.bus.Publish(events.EventTypeItemAdded, &events.ItemAddedPayload{
		DocumentID: "doc-1",
		SectionID:  "sec-1",
		ItemID:     "item-1",
		Text:       "buy milk",
	})

	s.Require().Len(saved, 1)
	s.Equal("doc-1", saved[0].DocumentID)
}

func (s *AutosaveSuite) TestRunsAfterDefaultPriorityListeners() {
	var order []string

	s.repo.EXPECT().Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(any, any) error {
			order = append(order, "autosave")
			return nil
		})

	s.bus.Subscribe(events.EventTypeItemToggled, func(events.Event) error {
		order = append(order, "render")
		return nil
	}, events.WithPriority(events.PriorityRendering))

	s.bus.Publish(events.EventTypeItemToggled, &events.ItemToggledPayload{DocumentID: "doc-1"})

	s.Equal([]string{"render", "autosave"}, order)
}

func (s *AutosaveSuite) TestSaveFailureSurfacesOnErrorChannel() {
	var reports []*events.ErrorPayload
	s.bus.Subscribe(events.EventTypeError, func(evt events.Event) error {
		reports = append(reports, evt.Payload.(*events.ErrorPayload))
		return nil
	})

	s.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	s.bus.Publish(events.EventTypeNotesUpdated, &events.NotesUpdatedPayload{DocumentID: "doc-1"})

	s.Require().Len(reports, 1)
	s.ErrorContains(reports[0].Err, "redis down")
	s.Contains(reports[0].Context, string(events.EventTypeNotesUpdated))
}

func (s *AutosaveSuite) TestUnopenedDocumentSurfacesOnErrorChannel() {
	var reports []*events.ErrorPayload
	s.bus.Subscribe(events.EventTypeError, func(evt events.Event) error {
		reports = append(reports, evt.Payload.(*events.ErrorPayload))
		return nil
	})

	s.bus.Publish(events.EventTypeItemAdded, &events.ItemAddedPayload{DocumentID: "unknown"})

	s.Require().Len(reports, 1)
	s.ErrorContains(reports[0].Err, "unknown")
}

func (s *AutosaveSuite) TestCloseDetachesFromBus() {
	s.saver.Close()

	// No Update expectation: publishing after Close must not hit storage
	s.bus.Publish(events.EventTypeItemAdded, &events.ItemAddedPayload{DocumentID: "doc-1"})

	for _, eventType := range events.DocumentMutationEventTypes() {
		s.Zero(s.bus.ListenerCount(eventType))
	}
}
