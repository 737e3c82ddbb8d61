package detector

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHandLandmarks_ToPixels(t *testing.T) {
	t.Run("scales and truncates", func(t *testing.T) {
		hand := HandLandmarks{Handedness: Left}
		hand.Points[Wrist] = Point3D{X: 0.5, Y: 0.5}
		hand.Points[IndexTip] = Point3D{X: 0.999, Y: 0.0015}

		px := hand.ToPixels(640, 480)

		if px.Points[Wrist] != (image.Point{X: 320, Y: 240}) {
			t.Errorf("wrist = %v, want (320,240)", px.Points[Wrist])
		}
		if px.Points[IndexTip] != (image.Point{X: 639, Y: 0}) {
			t.Errorf("index tip = %v, want (639,0)", px.Points[IndexTip])
		}
	})

	t.Run("keeps handedness paired", func(t *testing.T) {
		hand := OpenPalmLandmarks()
		px := hand.ToPixels(100, 100)
		if px.Handedness != Right {
			t.Errorf("handedness = %q, want %q", px.Handedness, Right)
		}
	})

	t.Run("nil hand returns nil", func(t *testing.T) {
		var hand *HandLandmarks
		if hand.ToPixels(640, 480) != nil {
			t.Error("expected nil result for nil input")
		}
	})
}

func TestMockDetector(t *testing.T) {
	t.Run("returns empty hands by default", func(t *testing.T) {
		mock := NewMockDetector()

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if hands != nil {
			t.Errorf("expected nil hands, got %v", hands)
		}
	})

	t.Run("returns configured hands", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetHands([]HandLandmarks{OpenPalmLandmarks()})

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(hands) != 1 {
			t.Errorf("expected 1 hand, got %d", len(hands))
		}
	})

	t.Run("drains queue before falling back", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetHands([]HandLandmarks{FistLandmarks()})
		mock.QueueHands(nil, []HandLandmarks{PinchLandmarks(), PinchLandmarks()})

		first, _ := mock.Detect(nil)
		second, _ := mock.Detect(nil)
		third, _ := mock.Detect(nil)

		if len(first) != 0 {
			t.Errorf("first call: expected no hands, got %d", len(first))
		}
		if len(second) != 2 {
			t.Errorf("second call: expected 2 hands, got %d", len(second))
		}
		if len(third) != 1 {
			t.Errorf("third call: expected fallback hand, got %d", len(third))
		}
		if mock.Calls() != 3 {
			t.Errorf("Calls() = %d, want 3", mock.Calls())
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()

		expectedErr := errors.New("detection failed")
		mock.SetError(expectedErr)

		hands, err := mock.Detect(nil)

		if err != expectedErr {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if hands != nil {
			t.Errorf("expected nil hands when error is set, got %v", hands)
		}
	})

	t.Run("Close marks closed", func(t *testing.T) {
		mock := NewMockDetector()

		if err := mock.Close(); err != nil {
			t.Errorf("expected Close to return nil, got %v", err)
		}
		if !mock.Closed() {
			t.Error("expected Closed() to be true")
		}
	})

	t.Run("implements Detector interface", func(t *testing.T) {
		var _ Detector = (*MockDetector)(nil)
		var _ Detector = (*MediaPipeDetector)(nil)
	})
}

func TestHandPose(t *testing.T) {
	tips := [5]int{ThumbTip, IndexTip, MiddleTip, RingTip, PinkyTip}

	t.Run("extended fingers sit above their PIP joint", func(t *testing.T) {
		hand := OpenPalmLandmarks()
		for f := 1; f < 5; f++ {
			if hand.Points[tips[f]].Y >= hand.Points[tips[f]-2].Y {
				t.Errorf("finger %d tip should be above PIP", f)
			}
		}
	})

	t.Run("curled fingers sit below their PIP joint", func(t *testing.T) {
		hand := FistLandmarks()
		for f := 1; f < 5; f++ {
			if hand.Points[tips[f]].Y <= hand.Points[tips[f]-2].Y {
				t.Errorf("finger %d tip should be below PIP", f)
			}
		}
	})

	t.Run("right thumb extends toward lower X", func(t *testing.T) {
		hand := PinchLandmarks()
		if hand.Points[ThumbTip].X >= hand.Points[ThumbIP].X {
			t.Error("right thumb tip should be left of thumb IP")
		}
	})

	t.Run("left hand is mirrored", func(t *testing.T) {
		right := HandPose(Right, [5]bool{true})
		left := HandPose(Left, [5]bool{true})
		if left.Handedness != Left {
			t.Errorf("handedness = %q, want %q", left.Handedness, Left)
		}
		for i := range right.Points {
			if got, want := left.Points[i].X, 1-right.Points[i].X; got != want {
				t.Errorf("point %d X = %f, want %f", i, got, want)
			}
			if left.Points[i].Y != right.Points[i].Y {
				t.Errorf("point %d Y should not change", i)
			}
		}
		if left.Points[ThumbTip].X <= left.Points[ThumbIP].X {
			t.Error("left thumb tip should be right of thumb IP")
		}
	})
}

func TestDecodeResponse(t *testing.T) {
	t.Run("full hand", func(t *testing.T) {
		var sb strings.Builder
		sb.WriteString(`{"hands":[{"handedness":"Left","score":0.9,"points":[`)
		for i := 0; i < NumLandmarks; i++ {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(`{"x":0.5,"y":0.25,"z":0}`)
		}
		sb.WriteString("]}]}\n")

		hands, err := decodeResponse([]byte(sb.String()))
		if err != nil {
			t.Fatalf("decodeResponse() error = %v", err)
		}
		if len(hands) != 1 {
			t.Fatalf("expected 1 hand, got %d", len(hands))
		}
		if hands[0].Handedness != Left {
			t.Errorf("handedness = %q, want Left", hands[0].Handedness)
		}
		if hands[0].Points[PinkyTip].Y != 0.25 {
			t.Errorf("pinky tip Y = %f, want 0.25", hands[0].Points[PinkyTip].Y)
		}
	})

	t.Run("partial hand is dropped", func(t *testing.T) {
		hands, err := decodeResponse([]byte(`{"hands":[{"handedness":"Right","points":[{"x":1,"y":1,"z":0}]}]}`))
		if err != nil {
			t.Fatalf("decodeResponse() error = %v", err)
		}
		if len(hands) != 0 {
			t.Errorf("expected partial hand to be dropped, got %d", len(hands))
		}
	})

	t.Run("service error", func(t *testing.T) {
		if _, err := decodeResponse([]byte(`{"error":"model missing"}`)); err == nil {
			t.Error("expected error from service error field")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		if _, err := decodeResponse([]byte(`{"hands":`)); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestWriteFrame(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte{0xff, 0xd8, 0xff, 0xd9}

	if err := writeFrame(&buf, payload); err != nil {
		t.Fatalf("writeFrame() error = %v", err)
	}

	out := buf.Bytes()
	if got := binary.BigEndian.Uint32(out[:4]); got != uint32(len(payload)) {
		t.Errorf("length prefix = %d, want %d", got, len(payload))
	}
	if !bytes.Equal(out[4:], payload) {
		t.Errorf("payload = %x, want %x", out[4:], payload)
	}
}

func TestConfig_Args(t *testing.T) {
	args := DefaultConfig().args()
	want := []string{
		"--max-hands", "1",
		"--min-detection-confidence", "0.7",
		"--min-tracking-confidence", "0.7",
	}
	if strings.Join(args, " ") != strings.Join(want, " ") {
		t.Errorf("args() = %v, want %v", args, want)
	}
}

func TestExchange_CapturedReply(t *testing.T) {
	reply, err := os.ReadFile(filepath.Join("testdata", "open_palm_reply.json"))
	if err != nil {
		t.Fatalf("read reply: %v", err)
	}
	jpeg := []byte{0xff, 0xd8, 0x01, 0x02, 0x03, 0xff, 0xd9}

	reqR, reqW := io.Pipe()
	respR, respW := io.Pipe()
	received := make(chan []byte, 1)

	// Stand-in for the Python service: read one frame, answer with the reply.
	go func() {
		defer respW.Close()
		header := make([]byte, 4)
		if _, err := io.ReadFull(reqR, header); err != nil {
			received <- nil
			return
		}
		payload := make([]byte, binary.BigEndian.Uint32(header))
		if _, err := io.ReadFull(reqR, payload); err != nil {
			received <- nil
			return
		}
		received <- payload
		respW.Write(reply)
	}()

	hands, err := exchange(reqW, bufio.NewReader(respR), jpeg)
	if err != nil {
		t.Fatalf("exchange() error = %v", err)
	}

	if got := <-received; !bytes.Equal(got, jpeg) {
		t.Errorf("service received %x, want %x", got, jpeg)
	}
	if len(hands) != 1 {
		t.Fatalf("expected 1 hand, got %d", len(hands))
	}

	hand := hands[0]
	if hand.Handedness != Right {
		t.Errorf("handedness = %q, want Right", hand.Handedness)
	}
	if hand.Score != 0.9731 {
		t.Errorf("score = %v, want 0.9731", hand.Score)
	}

	px := hand.ToPixels(640, 480)
	if px.Points[Wrist] != image.Pt(327, 384) {
		t.Errorf("wrist = %v, want (327,384)", px.Points[Wrist])
	}
	if px.Points[ThumbTip].X >= px.Points[ThumbIP].X {
		t.Error("captured right thumb should point toward lower x")
	}
	for _, tip := range []int{IndexTip, MiddleTip, RingTip, PinkyTip} {
		if px.Points[tip].Y >= px.Points[tip-2].Y {
			t.Errorf("landmark %d should be above its PIP joint", tip)
		}
	}
}

func TestExchange_ServiceGone(t *testing.T) {
	var req bytes.Buffer
	_, err := exchange(&req, bufio.NewReader(strings.NewReader("")), []byte{1})
	if err == nil {
		t.Fatal("expected error when the service closes its output")
	}
}

func TestServiceScript_AcceptsConfigFlags(t *testing.T) {
	script, err := os.ReadFile(filepath.Join("..", "..", "scripts", ScriptName))
	if err != nil {
		t.Fatalf("service script not shipped: %v", err)
	}
	for _, arg := range DefaultConfig().args() {
		if strings.HasPrefix(arg, "--") && !bytes.Contains(script, []byte(`"`+arg+`"`)) {
			t.Errorf("%s does not declare %s", ScriptName, arg)
		}
	}
}
