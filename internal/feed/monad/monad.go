// Package monad implements the feed.Fetcher interface over a Monad(EVM)
// JSON-RPC node.
package monad

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/sha3"

	"github.com/tipnet/midas/internal/feed"
)

var log = logrus.WithField("package", "monad")

// Topics of the SocialTipping contract events.
var (
	postCreatedTopic     = eventTopic("PostCreated(uint256,address,string,uint256)")
	tipSentTopic         = eventTopic("TipSent(uint256,address,address,uint256)")
	autoTipEnabledTopic  = eventTopic("AutoTipEnabled(uint256,uint256,address,uint256,uint256)")
	autoTipRevokedTopic  = eventTopic("AutoTipRevoked(uint256,uint256,address)")
	autoTipExecutedTopic = eventTopic("AutoTipExecuted(uint256,uint256,address,address,uint256)")
)

type fetcher struct {
	client   *http.Client
	node     string
	contract string
}

// New returns feed.Fetcher which polls the given node for logs emitted by the
// contract.
func New(node, contract string, timeout time.Duration) feed.Fetcher {
	return &fetcher{
		client:   &http.Client{Timeout: timeout},
		node:     node,
		contract: strings.ToLower(contract),
	}
}

func (f *fetcher) FetchBlocks(ctx context.Context, from uint64, handle func(b feed.Block) error, opts ...feed.FetchBlocksOption) error {
	o := feed.DefaultFetchBlocksOptions()
	for _, opt := range opts {
		opt(&o)
	}

	height := from

	for {
		if err := ctx.Err(); err != nil {
			return nil // nolint:nilerr
		}

		latest, err := f.blockNumber(ctx)
		if err != nil {
			o.ErrHandler(height, fmt.Errorf("failed to get last block number: %w", err))
			if !sleep(ctx, o.RetryInterval) {
				return nil
			}
			continue
		}

		if height > latest {
			if !sleep(ctx, o.RetryLastBlockInterval) {
				return nil
			}
			continue
		}

		b, err := f.fetchBlock(ctx, height)
		if err != nil {
			o.ErrHandler(height, fmt.Errorf("failed to fetch block: %w", err))
			if !sleep(ctx, o.RetryInterval) {
				return nil
			}
			continue
		}

		if err := handle(*b); err != nil {
			o.ErrHandler(height, err)
			if !sleep(ctx, o.RetryInterval) {
				return nil
			}
			continue
		}

		height++
	}
}

func (f *fetcher) fetchBlock(ctx context.Context, height uint64) (*feed.Block, error) {
	var head struct {
		Timestamp string `json:"timestamp"`
	}
	if err := f.call(ctx, "eth_getBlockByNumber", []interface{}{toHex(height), false}, &head); err != nil {
		return nil, fmt.Errorf("failed to get block %d: %w", height, err)
	}

	ts, err := parseHexUint64(head.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse block timestamp: %w", err)
	}

	var logs []rawLog
	if err := f.call(ctx, "eth_getLogs", []interface{}{map[string]interface{}{
		"fromBlock": toHex(height),
		"toBlock":   toHex(height),
		"address":   f.contract,
	}}, &logs); err != nil {
		return nil, fmt.Errorf("failed to get logs: %w", err)
	}

	b := feed.Block{
		Height: height,
		Time:   time.Unix(int64(ts), 0).UTC(),
	}

	for _, l := range logs {
		e, err := decodeLog(l, b.Time)
		if err != nil {
			// Malformed payload halts this single event, not the stream.
			log.WithError(err).WithField("log", l).Error("failed to decode event")
			continue
		}
		if e != nil {
			b.Events = append(b.Events, e)
		}
	}

	return &b, nil
}

type rawLog struct {
	Topics   []string `json:"topics"`
	Data     string   `json:"data"`
	TxHash   string   `json:"transactionHash"`
	LogIndex string   `json:"logIndex"`
}

func decodeLog(l rawLog, blockTime time.Time) (feed.Event, error) {
	if len(l.Topics) == 0 {
		return nil, fmt.Errorf("log without topics")
	}

	idx, err := parseHexUint64(l.LogIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log index: %w", err)
	}

	ref := feed.Ref{TxHash: l.TxHash, LogIndex: uint32(idx)}

	data, err := decodeHex(l.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data: %w", err)
	}

	switch l.Topics[0] {
	case postCreatedTopic:
		if err := wantTopics(l, 3); err != nil {
			return nil, err
		}
		postID, err := topicUint64(l.Topics[1])
		if err != nil {
			return nil, err
		}
		content, err := dataString(data, 0)
		if err != nil {
			return nil, err
		}
		ts, err := dataUint64(data, 1)
		if err != nil {
			return nil, err
		}
		return feed.PostCreated{
			Ref:       ref,
			PostID:    postID,
			Creator:   topicAddress(l.Topics[2]),
			Content:   content,
			Timestamp: time.Unix(int64(ts), 0).UTC(),
		}, nil

	case tipSentTopic:
		if err := wantTopics(l, 4); err != nil {
			return nil, err
		}
		postID, err := topicUint64(l.Topics[1])
		if err != nil {
			return nil, err
		}
		amount, err := dataBig(data, 0)
		if err != nil {
			return nil, err
		}
		return feed.TipSent{
			Ref:     ref,
			PostID:  postID,
			Tipper:  topicAddress(l.Topics[2]),
			Creator: topicAddress(l.Topics[3]),
			Amount:  amount,
		}, nil

	case autoTipEnabledTopic:
		if err := wantTopics(l, 4); err != nil {
			return nil, err
		}
		delegationID, err := topicUint64(l.Topics[1])
		if err != nil {
			return nil, err
		}
		postID, err := topicUint64(l.Topics[2])
		if err != nil {
			return nil, err
		}
		threshold, err := dataUint64(data, 0)
		if err != nil {
			return nil, err
		}
		amount, err := dataBig(data, 1)
		if err != nil {
			return nil, err
		}
		return feed.AutoTipEnabled{
			Ref:          ref,
			DelegationID: delegationID,
			PostID:       postID,
			Tipper:       topicAddress(l.Topics[3]),
			Threshold:    threshold,
			Amount:       amount,
		}, nil

	case autoTipRevokedTopic:
		if err := wantTopics(l, 4); err != nil {
			return nil, err
		}
		delegationID, err := topicUint64(l.Topics[1])
		if err != nil {
			return nil, err
		}
		postID, err := topicUint64(l.Topics[2])
		if err != nil {
			return nil, err
		}
		return feed.AutoTipRevoked{
			Ref:          ref,
			DelegationID: delegationID,
			PostID:       postID,
			Tipper:       topicAddress(l.Topics[3]),
		}, nil

	case autoTipExecutedTopic:
		if err := wantTopics(l, 4); err != nil {
			return nil, err
		}
		delegationID, err := topicUint64(l.Topics[1])
		if err != nil {
			return nil, err
		}
		postID, err := topicUint64(l.Topics[2])
		if err != nil {
			return nil, err
		}
		creator, err := dataAddress(data, 0)
		if err != nil {
			return nil, err
		}
		amount, err := dataBig(data, 1)
		if err != nil {
			return nil, err
		}
		return feed.AutoTipExecuted{
			Ref:          ref,
			DelegationID: delegationID,
			PostID:       postID,
			Tipper:       topicAddress(l.Topics[3]),
			Creator:      creator,
			Amount:       amount,
		}, nil

	default:
		log.WithField("topic", l.Topics[0]).Debug("skip event")
		return nil, nil
	}
}

func (f *fetcher) blockNumber(ctx context.Context) (uint64, error) {
	var s string
	if err := f.call(ctx, "eth_blockNumber", []interface{}{}, &s); err != nil {
		return 0, err
	}

	return parseHexUint64(s)
}

func (f *fetcher) call(ctx context.Context, method string, params interface{}, out interface{}) error {
	body, err := json.Marshal(struct {
		JSONRPC string      `json:"jsonrpc"`
		ID      int         `json:"id"`
		Method  string      `json:"method"`
		Params  interface{} `json:"params"`
	}{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.node, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var res struct {
		Result json.RawMessage `json:"result"`
		Error  *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if res.Error != nil {
		return fmt.Errorf("rpc error %d: %s", res.Error.Code, res.Error.Message)
	}

	if err := json.Unmarshal(res.Result, out); err != nil {
		return fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

func eventTopic(signature string) string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(signature)) // nolint:errcheck
	return "0x" + hex.EncodeToString(h.Sum(nil))
}

func wantTopics(l rawLog, n int) error {
	if len(l.Topics) != n {
		return fmt.Errorf("expected %d topics, got %d", n, len(l.Topics))
	}

	return nil
}

func toHex(v uint64) string {
	return "0x" + strconv.FormatUint(v, 16)
}

func parseHexUint64(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 64)
}

func decodeHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}

func topicUint64(topic string) (uint64, error) {
	b, err := decodeHex(topic)
	if err != nil || len(b) != 32 {
		return 0, fmt.Errorf("invalid uint256 topic %q", topic)
	}

	return new(big.Int).SetBytes(b).Uint64(), nil
}

func topicAddress(topic string) string {
	s := strings.TrimPrefix(topic, "0x")
	if len(s) < 40 {
		return "0x" + s
	}

	return "0x" + strings.ToLower(s[len(s)-40:])
}

func dataWord(data []byte, i int) ([]byte, error) {
	if len(data) < (i+1)*32 {
		return nil, fmt.Errorf("data is too short: want word %d, len %d", i, len(data))
	}

	return data[i*32 : (i+1)*32], nil
}

func dataBig(data []byte, i int) (*big.Int, error) {
	w, err := dataWord(data, i)
	if err != nil {
		return nil, err
	}

	return new(big.Int).SetBytes(w), nil
}

func dataUint64(data []byte, i int) (uint64, error) {
	v, err := dataBig(data, i)
	if err != nil {
		return 0, err
	}

	return v.Uint64(), nil
}

func dataAddress(data []byte, i int) (string, error) {
	w, err := dataWord(data, i)
	if err != nil {
		return "", err
	}

	return "0x" + hex.EncodeToString(w[12:]), nil
}

// dataString decodes a dynamic string whose offset lives in word i.
// The offset and length words are untrusted, the bounds checks must not
// add them to anything that can wrap.
func dataString(data []byte, i int) (string, error) {
	offset, err := dataUint64(data, i)
	if err != nil {
		return "", err
	}

	if offset > uint64(len(data)) || uint64(len(data))-offset < 32 {
		return "", fmt.Errorf("string offset %d is out of range", offset)
	}

	length := new(big.Int).SetBytes(data[offset : offset+32]).Uint64()
	if uint64(len(data))-offset-32 < length {
		return "", fmt.Errorf("string length %d is out of range", length)
	}

	return string(data[offset+32 : offset+32+length]), nil
}
