package usecase

import "context"

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// WriteRawMessageReq — готовый к отправке payload события; ProductID служит
// ключом партиционирования.
type WriteRawMessageReq struct {
	ProductID int64
	Payload   []byte
}

func NewWriteRawMessageReq(productID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		ProductID: productID,
		Payload:   payload,
	}
}
