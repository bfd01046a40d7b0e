package persistent

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/elnathantransportes-ai/troca/services/negotiation/internal/entity"
	"github.com/elnathantransportes-ai/troca/services/negotiation/internal/model"
)

type MessageRepository interface {
	Create(message *entity.ChatMessage) error
	GetByProposal(proposalID string) ([]*entity.ChatMessage, error)
	MarkRead(proposalID, readerID string) error
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *entity.ChatMessage) error {
	messageModel := ToChatMessageModel(message)
	if messageModel.ID == "" {
		messageModel.ID = uuid.New().String()
	}
	if err := r.db.Create(messageModel).Error; err != nil {
		return err
	}
	*message = *ToChatMessageEntity(messageModel)
	return nil
}

func (r *messageRepository) GetByProposal(proposalID string) ([]*entity.ChatMessage, error) {
	var messageModels []model.ChatMessageModel
	if err := r.db.Where("proposal_id = ?", proposalID).
		Order("created_at ASC").Find(&messageModels).Error; err != nil {
		return nil, err
	}

	messages := make([]*entity.ChatMessage, len(messageModels))
	for i := range messageModels {
		messages[i] = ToChatMessageEntity(&messageModels[i])
	}
	return messages, nil
}

func (r *messageRepository) MarkRead(proposalID, readerID string) error {
	return r.db.Model(&model.ChatMessageModel{}).
		Where("proposal_id = ? AND sender_id != ? AND read = ?", proposalID, readerID, false).
		Update("read", true).Error
}
