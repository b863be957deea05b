package rpc

import (
	"github.com/saturnino-fabrica-de-software/faceid/internal/domain"
	"github.com/saturnino-fabrica-de-software/faceid/internal/recognition"
	"github.com/saturnino-fabrica-de-software/faceid/internal/rpc/facepb"
)

func fragmentFromProto(req *facepb.FaceRecognitionRequest) recognition.Fragment {
	var f recognition.Fragment
	if h := req.GetHeader(); h != nil {
		header := &domain.Header{Faces: make([]domain.Region, 0, len(h.GetFaces()))}
		for _, box := range h.GetFaces() {
			header.Faces = append(header.Faces, domain.Region{
				X:      int(box.GetX()),
				Y:      int(box.GetY()),
				Width:  int(box.GetW()),
				Height: int(box.GetH()),
			})
		}
		f.Header = header
	}
	if c := req.GetImageChunk(); c != nil {
		f.Chunk = c.GetContent()
	}
	return f
}

func responseToProto(rec *domain.Recognition) *facepb.FaceRecognitionResponse {
	resp := &facepb.FaceRecognitionResponse{
		Identities: make([]*facepb.FaceIdentity, len(rec.Identities)),
	}
	for i, id := range rec.Identities {
		resp.Identities[i] = &facepb.FaceIdentity{Identity: id.Embedding}
	}
	return resp
}

func headerToProto(regions []domain.Region) *facepb.FaceRecognitionRequest {
	header := &facepb.FaceRecognitionHeader{Faces: make([]*facepb.BoundingBox, len(regions))}
	for i, r := range regions {
		header.Faces[i] = &facepb.BoundingBox{X: int32(r.X), Y: int32(r.Y), W: int32(r.Width), H: int32(r.Height)}
	}
	return &facepb.FaceRecognitionRequest{RequestData: &facepb.FaceRecognitionRequest_Header{Header: header}}
}

func chunkToProto(chunk []byte) *facepb.FaceRecognitionRequest {
	return &facepb.FaceRecognitionRequest{
		RequestData: &facepb.FaceRecognitionRequest_ImageChunk{ImageChunk: &facepb.ImageChunk{Content: chunk}},
	}
}

func identitiesFromProto(resp *facepb.FaceRecognitionResponse) []domain.Identity {
	out := make([]domain.Identity, len(resp.GetIdentities()))
	for i, id := range resp.GetIdentities() {
		out[i] = domain.Identity{Embedding: id.GetIdentity()}
	}
	return out
}
