// Command ignite-client sends one set/get/rm request per invocation to
// an ignite-server and reports its result (spec §6.3).
package main

import (
	"fmt"
	"net"
	"os"

	"github.com/ignitedb/ignite/internal/protocol"
	"github.com/ignitedb/ignite/pkg/errors"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var addr string

	root := &cobra.Command{
		Use:   "ignite-client",
		Short: "Talk to an ignite-server over the wire protocol",
	}
	root.PersistentFlags().StringVar(&addr, "addr", "127.0.0.1:4000", "server IP:port")

	root.AddCommand(
		newSetCmd(&addr),
		newGetCmd(&addr),
		newRmCmd(&addr),
	)
	return root
}

func newSetCmd(addr *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a key to a value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, conn, err := dial(*addr)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := codec.WriteRequest(protocol.NewSetRequest(args[0], args[1])); err != nil {
				return err
			}
			resp, err := codec.ReadSetResponse()
			if err != nil {
				return err
			}
			if !resp.OK {
				return errors.NewStringError(errMessage(resp.Err))
			}
			return nil
		},
	}
}

func newGetCmd(addr *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, conn, err := dial(*addr)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := codec.WriteRequest(protocol.NewGetRequest(args[0])); err != nil {
				return err
			}
			resp, err := codec.ReadGetResponse()
			if err != nil {
				return err
			}
			if !resp.OK {
				return errors.NewStringError(errMessage(resp.Err))
			}
			if resp.Value == nil {
				fmt.Println("Key not found")
				return nil
			}
			fmt.Println(*resp.Value)
			return nil
		},
	}
}

func newRmCmd(addr *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <key>",
		Short: "Remove a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, conn, err := dial(*addr)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := codec.WriteRequest(protocol.NewRmRequest(args[0])); err != nil {
				return err
			}
			resp, err := codec.ReadRmResponse()
			if err != nil {
				return err
			}
			if !resp.OK {
				wireErr := errors.NewStringError(errMessage(resp.Err))
				if wireErr.Error() == errors.ErrKeyNotFound.Error() {
					fmt.Println("Key not found")
				}
				return wireErr
			}
			return nil
		},
	}
}

func dial(addr string) (*protocol.Codec, net.Conn, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, nil, err
	}
	return protocol.NewCodec(conn), conn, nil
}

func errMessage(err *string) string {
	if err == nil {
		return "unknown error"
	}
	return *err
}
